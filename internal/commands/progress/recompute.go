// Package progresscmd exposes stats maintenance operations as go-command
// messages so they can run from the CLI or on a cron schedule.
package progresscmd

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-l10n/internal/commands"
	"github.com/goliatone/go-l10n/internal/logging"
	"github.com/goliatone/go-l10n/internal/progress"
	"github.com/goliatone/go-l10n/pkg/interfaces"
	"github.com/google/uuid"
)

const recomputeMessageType = "l10n.progress.recompute"

// RecomputeCommand rebuilds aggregate snapshots from per-pair stats rows.
// At least one of ProjectID or LocaleID must be set; both may be.
type RecomputeCommand struct {
	ProjectID uuid.UUID `json:"project_id,omitempty"`
	LocaleID  uuid.UUID `json:"locale_id,omitempty"`
}

// Type implements command.Message.
func (RecomputeCommand) Type() string { return recomputeMessageType }

// Validate ensures the command targets at least one aggregate.
func (m RecomputeCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ProjectID, validation.By(func(any) error {
			if m.ProjectID == uuid.Nil && m.LocaleID == uuid.Nil {
				return validation.NewError("l10n.progress.recompute.target_required", "project_id or locale_id is required")
			}
			return nil
		})),
	)
}

type recomputeHandlerConfig struct {
	cronConfig command.HandlerConfig
	timeout    time.Duration
}

// RecomputeHandlerOption customises the recompute handler.
type RecomputeHandlerOption func(*recomputeHandlerConfig)

// RecomputeWithCronConfig overrides the cron registration options.
func RecomputeWithCronConfig(config command.HandlerConfig) RecomputeHandlerOption {
	return func(cfg *recomputeHandlerConfig) {
		cfg.cronConfig = config
	}
}

// RecomputeWithCronExpression overrides the cron expression.
func RecomputeWithCronExpression(expression string) RecomputeHandlerOption {
	return func(cfg *recomputeHandlerConfig) {
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			cfg.cronConfig.Expression = trimmed
		}
	}
}

// RecomputeWithTimeout overrides the default execution timeout.
func RecomputeWithTimeout(timeout time.Duration) RecomputeHandlerOption {
	return func(cfg *recomputeHandlerConfig) {
		cfg.timeout = timeout
	}
}

// RecomputeHandler rebuilds aggregates via the progress service.
type RecomputeHandler struct {
	progress   progress.Service
	logger     interfaces.Logger
	cronConfig command.HandlerConfig
	timeout    time.Duration
}

// NewRecomputeHandler constructs a handler wired to the provided progress service.
func NewRecomputeHandler(svc progress.Service, logger interfaces.Logger, opts ...RecomputeHandlerOption) *RecomputeHandler {
	cfg := recomputeHandlerConfig{
		cronConfig: command.HandlerConfig{
			Expression: "@hourly",
		},
		timeout: commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &RecomputeHandler{
		progress:   svc,
		logger:     commands.EnsureLogger(logger),
		cronConfig: cfg.cronConfig,
		timeout:    cfg.timeout,
	}
}

// Execute satisfies command.Commander[RecomputeCommand].
func (h *RecomputeHandler) Execute(ctx context.Context, msg RecomputeCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	logger := logging.WithFields(h.logger, map[string]any{
		"operation": "progress.recompute",
	})

	if msg.ProjectID != uuid.Nil {
		snapshot, err := h.progress.RecomputeProject(ctx, msg.ProjectID)
		if err != nil {
			return commands.WrapExecuteError(err)
		}
		logging.WithFields(logger, map[string]any{
			"project_id":       msg.ProjectID.String(),
			"total_strings":    snapshot.Total,
			"approved_strings": snapshot.Approved,
		}).Info("progress.command.recompute.project")
	}

	if msg.LocaleID != uuid.Nil {
		snapshot, err := h.progress.RecomputeLocale(ctx, msg.LocaleID)
		if err != nil {
			return commands.WrapExecuteError(err)
		}
		logging.WithFields(logger, map[string]any{
			"locale_id":        msg.LocaleID.String(),
			"total_strings":    snapshot.Total,
			"approved_strings": snapshot.Approved,
		}).Info("progress.command.recompute.locale")
	}

	return nil
}

// CronConfig exposes the cron registration options for scheduler wiring.
func (h *RecomputeHandler) CronConfig() command.HandlerConfig {
	return h.cronConfig
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *RecomputeHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for progress recomputation.
func (h *RecomputeHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"progress", "recompute"},
		Group:       "progress",
		Description: "Rebuild project and locale aggregates from per-pair stats",
	}
}
