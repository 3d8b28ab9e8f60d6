package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the response for a request whose handler panicked
type PanicHandler func(w http.ResponseWriter, r *http.Request, err any)

// Recovery turns a handler panic into an error-level log line plus the
// response written by handler. extra may be nil.
func Recovery(logger *slog.Logger, handler PanicHandler, extra RequestAttrs) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				attrs := []slog.Attr{
					slog.String("panic", fmt.Sprint(recovered)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				}
				if extra != nil {
					attrs = append(attrs, extra(r)...)
				}
				attrs = append(attrs, slog.String("stack", string(debug.Stack())))
				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered", attrs...)

				handler(w, r, recovered)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// DefaultPanicHandler answers with a plain 500
func DefaultPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
