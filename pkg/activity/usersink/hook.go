// Package usersink bridges activity events into a go-users activity sink.
package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-l10n/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Sink matches the go-users activity sink contract.
type Sink interface {
	Log(ctx context.Context, record usertypes.ActivityRecord) error
}

// Hook converts activity events into go-users activity records.
type Hook struct {
	Sink Sink
}

// Notify maps the event onto an ActivityRecord and logs it. Events without
// a verb are ignored.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	if strings.TrimSpace(event.Verb) == "" {
		return nil
	}

	record := usertypes.ActivityRecord{
		Verb:       event.Verb,
		ActorID:    parseUUID(event.ActorID),
		UserID:     parseUUID(event.UserID),
		TenantID:   parseUUID(event.TenantID),
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		OccurredAt: event.OccurredAt,
		Data:       map[string]any{},
	}
	for key, value := range event.Metadata {
		record.Data[key] = value
	}
	if event.DefinitionCode != "" {
		record.Data["definition_code"] = event.DefinitionCode
	}
	if len(event.Recipients) > 0 {
		record.Data["recipients"] = event.Recipients
	}

	return h.Sink.Log(ctx, record)
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
