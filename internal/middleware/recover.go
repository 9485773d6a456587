package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	pkghttp "github.com/BradenHooton/storefront/pkg/http"
	"github.com/go-chi/chi/v5/middleware"
)

// Recoverer turns a handler panic into the INTERNAL_ERROR envelope and logs
// the stack. It must run inside Correlation so the response carries the id.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)

				// Nothing can be sent once the handler started the response
				if wrapped.Status() == 0 {
					pkghttp.WriteInternalError(wrapped, r)
				}
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}

// Timeout bounds the request context by d. A handler that gives up on the
// expired deadline without answering gets the INTERNAL_ERROR envelope.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			r = r.WithContext(ctx)

			next.ServeHTTP(wrapped, r)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && wrapped.Status() == 0 {
				pkghttp.WriteInternalError(wrapped, r)
			}
		})
	}
}
