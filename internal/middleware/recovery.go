package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the error response after a recovered panic
type PanicHandler func(w http.ResponseWriter, r *http.Request, err any)

// Recovery creates panic recovery middleware. A panic inside a handler is
// logged with its stack and answered by the given PanicHandler; a panic on
// a hijacked websocket connection has no ResponseWriter left to write to,
// so the handler's write simply fails and the connection drops.
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					handler(w, r, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// DefaultPanicHandler answers with the same JSON error envelope the API
// uses for expected failures
func DefaultPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"Internal server error"}}`))
}
