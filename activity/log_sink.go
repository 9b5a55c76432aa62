package activity

import (
	"context"
	"strings"

	"github.com/goliatone/go-accountctl/pkg/types"
)

// LogSink writes activity records as structured log lines. It backs the audit
// trail when no database is configured.
type LogSink struct {
	Logger types.Logger
	Clock  types.Clock
}

var _ types.ActivitySink = (*LogSink)(nil)

// Log emits the record at info level.
func (s *LogSink) Log(_ context.Context, record types.ActivityRecord) error {
	if s == nil || s.Logger == nil {
		return types.ErrMissingActivitySink
	}
	if strings.TrimSpace(record.Verb) == "" {
		return ErrVerbRequired
	}
	occurredAt := record.OccurredAt
	if occurredAt.IsZero() && s.Clock != nil {
		occurredAt = s.Clock.Now()
	}
	fields := []any{
		"verb", record.Verb,
		"account_id", record.AccountID,
		"object_type", record.ObjectType,
		"object_id", record.ObjectID,
		"channel", record.Channel,
		"occurred_at", occurredAt,
	}
	for key, value := range record.Data {
		fields = append(fields, "data."+key, value)
	}
	s.Logger.Info("accountctl: activity", fields...)
	return nil
}
