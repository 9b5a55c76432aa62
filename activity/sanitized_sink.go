package activity

import (
	"context"

	"github.com/goliatone/go-accountctl/pkg/types"
	"github.com/goliatone/go-masker"
)

// SanitizedSink masks record payloads before forwarding them to Sink.
type SanitizedSink struct {
	Sink   types.ActivitySink
	Masker *masker.Masker
}

var _ types.ActivitySink = (*SanitizedSink)(nil)

// Log sanitizes the record and forwards it to the wrapped sink.
func (s *SanitizedSink) Log(ctx context.Context, record types.ActivityRecord) error {
	if s == nil || s.Sink == nil {
		return types.ErrMissingActivitySink
	}
	return s.Sink.Log(ctx, SanitizeRecord(s.Masker, record))
}
