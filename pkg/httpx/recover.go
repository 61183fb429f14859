package httpx

import (
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"

	"github.com/propcheck/inspections/pkg/slogx"
)

// RecoverMiddleware converts handler panics into 500 responses and reports
// them to Sentry when a DSN is configured.
func RecoverMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log := slogx.FromContext(r.Context())
					log.Error("panic in request handler",
						"panic", rec,
						"stack", string(debug.Stack()),
					)
					sentry.WithScope(func(scope *sentry.Scope) {
						scope.SetTag("path", r.URL.Path)
						scope.SetTag("method", r.Method)
						if err, ok := rec.(error); ok {
							sentry.CaptureException(err)
						} else {
							sentry.CaptureMessage("panic in request")
						}
					})
					WriteJSON(w, http.StatusInternalServerError, map[string]string{
						"error":             "server_error",
						"error_description": "internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
