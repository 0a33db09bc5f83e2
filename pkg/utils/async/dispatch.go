package async

import (
	"context"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler in a new goroutine and returns the job ID attached to its logger.
//
// The handler receives a background context that keeps the caller's logger (with a
// "job_id" attribute) but not its cancellation, so a finished HTTP request does not
// abort a running sync. Panics and returned errors are logged, never propagated.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) string {
	jobID := uuid.NewString()
	newCtx := newBackgroundContext(ctx, jobID)

	go func() {
		logger := ctxlog.From(newCtx)
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in async job",
					"recover", r,
					"stack", string(debug.Stack()))
			}
		}()

		logger.Debug("async job started")
		if err := handler(newCtx); err != nil {
			logger.Error("async job failed", "error", err)
			return
		}
		logger.Debug("async job finished")
	}()

	return jobID
}

func newBackgroundContext(ctx context.Context, jobID string) context.Context {
	logger := ctxlog.From(ctx).With("job_id", jobID)
	return ctxlog.With(context.Background(), logger)
}
