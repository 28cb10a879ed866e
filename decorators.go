package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Decorator wraps a Callback to add cross-cutting functionality.
// Decorators compose like HTTP middleware.
type Decorator func(Callback) Callback

// ApplyDecorators applies a series of decorators to a callback.
// Decorators are applied in the order given: the first decorator in the
// list becomes the outermost wrapper (executes first).
//
// Example:
//
//	cb := dispatcher.ApplyDecorators(
//	    myCallback,
//	    dispatcher.WithLogging(logger),
//	    dispatcher.WithRecover(),
//	)
func ApplyDecorators(cb Callback, decorators ...Decorator) Callback {
	for i := len(decorators) - 1; i >= 0; i-- {
		cb = decorators[i](cb)
	}
	return cb
}

// WithLogging logs every invocation of the callback at debug level and
// failures at error level, tagged with the dispatch ID.
func WithLogging(logger *slog.Logger) Decorator {
	return func(next Callback) Callback {
		return func(ctx context.Context, payload any) error {
			start := time.Now()

			if err := next(ctx, payload); err != nil {
				logger.ErrorContext(ctx, "callback failed",
					slog.String("dispatch_id", DispatchID(ctx)),
					slog.Duration("duration", time.Since(start)),
					slog.String("error", err.Error()))
				return err
			}

			logger.DebugContext(ctx, "callback completed",
				slog.String("dispatch_id", DispatchID(ctx)),
				slog.Duration("duration", time.Since(start)))
			return nil
		}
	}
}

// WithRecover converts a callback panic into an error so one misbehaving
// callback aborts the dispatch through the normal error path instead of
// unwinding the caller's stack.
func WithRecover() Decorator {
	return func(next Callback) Callback {
		return func(ctx context.Context, payload any) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("callback panicked: %v", r)
				}
			}()
			return next(ctx, payload)
		}
	}
}
