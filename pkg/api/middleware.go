package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vwap/veganizer/pkg/kit"
)

// errInternal marks an error that originated inside an endpoint rather than
// from the caller's input.
var errInternal = errors.New("internal error")

// instrument is the standard middleware stack for an endpoint: logging
// outermost, panic recovery innermost.
func instrument(logger *slog.Logger) func(string) kit.Middleware {
	logged := loggingMiddleware(logger)
	return func(name string) kit.Middleware {
		return kit.Chain(logged(name), recoverMiddleware(logger))
	}
}

// loggingMiddleware logs every endpoint invocation with its transport,
// duration and outcome. Failures log at warn so a flapping store shows up
// without debug logging enabled.
func loggingMiddleware(logger *slog.Logger) func(string) kit.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(name string) kit.Middleware {
		return func(next kit.Endpoint) kit.Endpoint {
			return func(ctx context.Context, request any) (any, error) {
				start := time.Now()
				resp, err := next(ctx, request)
				attrs := []any{
					"endpoint", name,
					"transport", kit.GetTransport(ctx),
					"elapsed_ms", time.Since(start).Milliseconds(),
				}
				if id := kit.GetRequestID(ctx); id != "" {
					attrs = append(attrs, "request_id", id)
				}
				if err != nil {
					logger.Warn("endpoint failed", append(attrs, "error", err)...)
				} else {
					logger.Debug("endpoint ok", attrs...)
				}
				return resp, err
			}
		}
	}
}

// recoverMiddleware converts an endpoint panic into an error so one bad
// request cannot take the process down.
func recoverMiddleware(logger *slog.Logger) kit.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (resp any, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("endpoint panicked", "panic", r)
					resp, err = nil, fmt.Errorf("%w: %v", errInternal, r)
				}
			}()
			return next(ctx, request)
		}
	}
}
