package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LogEntry models the persisted row in account_activity.
type LogEntry struct {
	bun.BaseModel `bun:"table:account_activity"`

	ID         uuid.UUID      `bun:",pk,type:uuid"`
	AccountID  string         `bun:"account_id"`
	Verb       string         `bun:"verb"`
	ObjectType string         `bun:"object_type"`
	ObjectID   string         `bun:"object_id"`
	Channel    string         `bun:"channel"`
	Data       map[string]any `bun:"data,type:jsonb"`
	CreatedAt  time.Time      `bun:"created_at"`
}
