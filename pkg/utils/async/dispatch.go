package async

import (
	"context"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
)

// Dispatch executes a handler function asynchronously with proper context and panic recovery.
// HTTP handlers use it to answer 202 Accepted while the work continues after the request ends.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	// Create a new background context preserving important values
	newCtx := newBackgroundContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(newCtx).Error("Panic in async handler",
					"recover", r,
					"stack", string(stack),
				)
			}
		}()

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("Error in async handler",
				"error", err,
			)
		}
	}()
}

// newBackgroundContext detaches from the request's cancellation but keeps the logger and request ID
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()

	if logger := ctxlog.From(ctx); logger != nil {
		newCtx = ctxlog.With(newCtx, logger)
	}

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		newCtx = context.WithValue(newCtx, middleware.RequestIDKey, reqID)
	}

	return newCtx
}
