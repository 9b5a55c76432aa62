package activity

import (
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-accountctl/pkg/types"
)

// ErrVerbRequired indicates an activity record was emitted without a verb.
var ErrVerbRequired = errors.New("activity: verb required")

// RecordOption mutates the ActivityRecord produced by BuildRecord.
type RecordOption func(*types.ActivityRecord)

// WithChannel sets the channel/module field used for downstream filtering.
func WithChannel(channel string) RecordOption {
	return func(record *types.ActivityRecord) {
		record.Channel = strings.TrimSpace(channel)
	}
}

// WithOccurredAt stamps the record with the supplied time.
func WithOccurredAt(at time.Time) RecordOption {
	return func(record *types.ActivityRecord) {
		record.OccurredAt = at
	}
}

// BuildRecord constructs an ActivityRecord for an account workflow. Metadata
// is copied so later caller mutation does not leak into the sink.
func BuildRecord(accountID, verb, objectType, objectID string, metadata map[string]any, opts ...RecordOption) types.ActivityRecord {
	record := types.ActivityRecord{
		AccountID:  strings.TrimSpace(accountID),
		Verb:       strings.TrimSpace(verb),
		ObjectType: strings.TrimSpace(objectType),
		ObjectID:   strings.TrimSpace(objectID),
		Data:       cloneMap(metadata),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&record)
		}
	}
	return record
}
