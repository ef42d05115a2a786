// Package commands exposes the l10n command handlers to host applications so
// they can be mounted on a CLI, a dispatcher, or a cron scheduler.
package commands

import (
	"errors"
	"strings"

	internalcmd "github.com/goliatone/go-l10n/internal/commands"
	auditcmd "github.com/goliatone/go-l10n/internal/commands/audit"
	progresscmd "github.com/goliatone/go-l10n/internal/commands/progress"
	"github.com/goliatone/go-l10n/internal/di"
	"github.com/goliatone/go-l10n/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// RecomputeCron overrides the default cron expression applied to the
	// progress recompute handler.
	RecomputeCron string
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands builds the command handlers exposed by the provided
// container and optionally registers them with registry/dispatcher/cron
// integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	if opts.Registry != nil && opts.CronRegistrar != nil {
		if reg, ok := opts.Registry.(interface {
			SetCronRegister(func(command.HandlerConfig, any) error) *command.Registry
		}); ok && reg != nil {
			reg.SetCronRegister(opts.CronRegistrar)
		}
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	if !cfg.Commands.Enabled {
		return result, nil
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	loggerFor := func(module string) interfaces.Logger {
		return internalcmd.CommandLogger(provider, module)
	}

	// Progress commands.
	if service := container.ProgressService(); service != nil {
		recomputeOpts := []progresscmd.RecomputeHandlerOption{
			progresscmd.RecomputeWithTimeout(cfg.Commands.Timeout),
		}
		if expr := strings.TrimSpace(opts.RecomputeCron); expr != "" {
			recomputeOpts = append(recomputeOpts, progresscmd.RecomputeWithCronExpression(expr))
		}
		handler := progresscmd.NewRecomputeHandler(service, loggerFor("progress"), recomputeOpts...)
		register(handler)
		if opts.CronRegistrar != nil {
			if err := opts.CronRegistrar(handler.CronConfig(), handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}
	}

	// Audit commands.
	if service := container.AccessService(); service != nil {
		register(auditcmd.NewExportHandler(service, loggerFor("audit"),
			auditcmd.ExportWithTimeout(cfg.Commands.Timeout)))
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured and commands enabled")
	}

	return result, errs
}
