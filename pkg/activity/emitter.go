package activity

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Hook receives emitted events. Implementations must be safe for
// concurrent use.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// Hooks fans an event out to multiple hooks.
type Hooks []Hook

// Config controls how the emitter decorates events.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter decorates and dispatches activity events to its hooks. Hook
// errors are swallowed so activity reporting never fails a write path.
type Emitter struct {
	hooks  Hooks
	config Config
	now    func() time.Time
}

// NewEmitter constructs an emitter. A nil hook list produces a disabled
// emitter that drops every event.
func NewEmitter(hooks Hooks, config Config) *Emitter {
	return &Emitter{
		hooks:  hooks,
		config: config,
		now:    time.Now,
	}
}

// Enabled reports whether events will be dispatched.
func (e *Emitter) Enabled() bool {
	return e != nil && e.config.Enabled && len(e.hooks) > 0
}

// Emit dispatches the event to every hook. Events without a verb are
// dropped.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Verb) == "" {
		return nil
	}
	if event.Channel == "" {
		event.Channel = e.config.Channel
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now()
	}
	for _, hook := range e.hooks {
		if hook == nil {
			continue
		}
		_ = hook.Notify(ctx, event)
	}
	return nil
}

// CaptureHook stores every event it receives. Intended for tests.
type CaptureHook struct {
	mu     sync.Mutex
	Events []Event
}

func (h *CaptureHook) Notify(_ context.Context, event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Events = append(h.Events, event)
	return nil
}
