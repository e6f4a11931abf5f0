package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/utils/logging"
)

// Dispatch executes a handler asynchronously in a new goroutine. The handler
// gets a fresh background context (the request context may be cancelled the
// moment the webhook response is written) with the request logger preserved.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
