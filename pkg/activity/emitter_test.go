package activity_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-l10n/pkg/activity"
)

func TestEmitterDecoratesEvents(t *testing.T) {
	hook := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{hook}, activity.Config{
		Enabled: true,
		Channel: "l10n",
	})

	if err := emitter.Emit(context.Background(), activity.Event{
		Verb:       "create",
		ObjectType: activity.ObjectProject,
		ObjectID:   "firefox",
	}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if len(hook.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(hook.Events))
	}
	event := hook.Events[0]
	if event.Channel != "l10n" {
		t.Fatalf("expected default channel, got %q", event.Channel)
	}
	if event.OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be stamped")
	}
}

func TestEmitterDropsWhenDisabled(t *testing.T) {
	hook := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{hook}, activity.Config{})

	if err := emitter.Emit(context.Background(), activity.Event{Verb: "create"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(hook.Events) != 0 {
		t.Fatalf("expected no events, got %d", len(hook.Events))
	}

	enabled := activity.NewEmitter(activity.Hooks{hook}, activity.Config{Enabled: true})
	if err := enabled.Emit(context.Background(), activity.Event{}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(hook.Events) != 0 {
		t.Fatalf("expected verbless event dropped, got %d", len(hook.Events))
	}
}
