package command

import (
	"context"
	"time"

	"github.com/goliatone/go-accountctl/pkg/types"
)

const activityChannel = "accounts"

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

func logActivity(ctx context.Context, sink types.ActivitySink, logger types.Logger, record types.ActivityRecord) {
	if sink == nil {
		return
	}
	if err := sink.Log(ctx, record); err != nil && logger != nil {
		logger.Error("accountctl: activity log failed", err, "verb", record.Verb)
	}
}

func emitCreatedHook(ctx context.Context, hooks types.Hooks, event types.AccountEvent) {
	if hooks.AfterAccountCreated == nil {
		return
	}
	hooks.AfterAccountCreated(ctx, event)
}

func emitDeletedHook(ctx context.Context, hooks types.Hooks, event types.AccountEvent) {
	if hooks.AfterAccountDeleted == nil {
		return
	}
	hooks.AfterAccountDeleted(ctx, event)
}
