// Package auditcmd exports the permission changelog through go-command so
// audits can run from the CLI or a cron schedule.
package auditcmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/commands"
	"github.com/goliatone/go-l10n/internal/logging"
	"github.com/goliatone/go-l10n/pkg/interfaces"
	"github.com/google/uuid"
)

const exportMessageType = "l10n.permissions.export"

// ExportPermissionLogCommand emits the recorded permission changes for one
// locale through the logger, newest first.
type ExportPermissionLogCommand struct {
	LocaleID   uuid.UUID `json:"locale_id"`
	MaxRecords *int      `json:"max_records,omitempty"`
}

// Type implements command.Message.
func (ExportPermissionLogCommand) Type() string { return exportMessageType }

// Validate ensures the command payload is well-formed.
func (m ExportPermissionLogCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.LocaleID, validation.By(func(any) error {
			if m.LocaleID == uuid.Nil {
				return validation.NewError("l10n.permissions.export.locale_required", "locale_id is required")
			}
			return nil
		})),
		validation.Field(&m.MaxRecords, validation.By(func(any) error {
			if m.MaxRecords != nil && *m.MaxRecords < 0 {
				return validation.NewError("l10n.permissions.export.max_records_invalid", "max_records must be zero or positive")
			}
			return nil
		})),
	)
}

// ExportHandler logs recorded permission changes up to the provided limit.
type ExportHandler struct {
	access  access.Service
	logger  interfaces.Logger
	timeout time.Duration
}

// ExportHandlerOption customises the export handler.
type ExportHandlerOption func(*ExportHandler)

// ExportWithTimeout overrides the default execution timeout.
func ExportWithTimeout(timeout time.Duration) ExportHandlerOption {
	return func(h *ExportHandler) {
		h.timeout = timeout
	}
}

// NewExportHandler constructs a handler wired to the access service.
func NewExportHandler(svc access.Service, logger interfaces.Logger, opts ...ExportHandlerOption) *ExportHandler {
	handler := &ExportHandler{
		access:  svc,
		logger:  commands.EnsureLogger(logger),
		timeout: commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(handler)
		}
	}
	return handler
}

// Execute satisfies command.Commander[ExportPermissionLogCommand].
func (h *ExportHandler) Execute(ctx context.Context, msg ExportPermissionLogCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	changes, err := h.access.Changelog(ctx, msg.LocaleID)
	if err != nil {
		return commands.WrapExecuteError(err)
	}
	limit := len(changes)
	if msg.MaxRecords != nil && *msg.MaxRecords < limit {
		limit = *msg.MaxRecords
	}

	baseLogger := logging.WithFields(h.logger, map[string]any{
		"operation": "permissions.export",
		"locale_id": msg.LocaleID.String(),
	})

	for idx := 0; idx < limit; idx++ {
		change := changes[idx]
		logging.WithFields(baseLogger, map[string]any{
			"index":           idx,
			"performed_on_id": change.PerformedOnID.String(),
			"role":            change.Role,
			"action":          change.Action,
			"performed_by_id": change.PerformedByID.String(),
			"occurred_at":     change.CreatedAt.Format(time.RFC3339),
		}).Debug("permissions.command.export.change")
	}

	logging.WithFields(baseLogger, map[string]any{
		"exported": limit,
		"total":    len(changes),
	}).Info("permissions.command.export.completed")
	return nil
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *ExportHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for permission log export.
func (h *ExportHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"permissions", "export"},
		Group:       "permissions",
		Description: "Export the permission changelog for a locale to the configured logger",
	}
}
