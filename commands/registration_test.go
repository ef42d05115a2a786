package commands

import (
	"testing"

	l10n "github.com/goliatone/go-l10n"
	auditcmd "github.com/goliatone/go-l10n/internal/commands/audit"
	progresscmd "github.com/goliatone/go-l10n/internal/commands/progress"
	"github.com/goliatone/go-l10n/internal/di"
	command "github.com/goliatone/go-command"
)

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	cfg := l10n.DefaultConfig()
	cfg.Commands.Enabled = true

	registry := &recordingRegistry{}
	dispatcher := &recordingDispatcher{}
	cron := &recordingCron{}

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{
		Registry:      registry,
		Dispatcher:    dispatcher,
		CronRegistrar: cron.Registrar(),
		RecomputeCron: "@daily",
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 2 {
		t.Fatalf("expected recompute and export handlers, got %d", len(result.Handlers))
	}
	if len(result.Handlers) != len(registry.handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(dispatcher.subscriptions) != len(result.Handlers) {
		t.Fatalf("expected dispatcher subscriptions for every handler, got %d", len(dispatcher.subscriptions))
	}
	if len(cron.registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(cron.registrations))
	}
	if got := cron.registrations[0].config.Expression; got != "@daily" {
		t.Fatalf("expected recompute cron expression override, got %q", got)
	}

	var hasRecompute, hasExport bool
	for _, handler := range result.Handlers {
		switch handler.(type) {
		case *progresscmd.RecomputeHandler:
			hasRecompute = true
		case *auditcmd.ExportHandler:
			hasExport = true
		}
	}
	if !hasRecompute {
		t.Fatal("expected progress recompute handler")
	}
	if !hasExport {
		t.Fatal("expected permission export handler")
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	cfg := l10n.DefaultConfig()
	cfg.Commands.Enabled = true

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) == 0 {
		t.Fatal("expected handlers to be built even without registrars")
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsRespectsCommandsFlag(t *testing.T) {
	container, err := di.NewContainer(l10n.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 0 {
		t.Fatalf("expected no handlers when commands are disabled, got %d", len(result.Handlers))
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

type recordingSubscription struct{}

func (recordingSubscription) Unsubscribe() {}

type recordingDispatcher struct {
	subscriptions []CommandSubscription
}

func (d *recordingDispatcher) RegisterCommand(any) (CommandSubscription, error) {
	subscription := recordingSubscription{}
	d.subscriptions = append(d.subscriptions, subscription)
	return subscription, nil
}

type cronRegistration struct {
	config command.HandlerConfig
}

type recordingCron struct {
	registrations []cronRegistration
	err           error
}

func (c *recordingCron) Registrar() CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		if c.err != nil {
			return c.err
		}
		c.registrations = append(c.registrations, cronRegistration{config: cfg})
		return nil
	}
}
