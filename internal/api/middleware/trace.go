package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bpcalc/internal/api/shared"
	"github.com/phrazzld/bpcalc/internal/platform/logger"
)

// Trace returns middleware that assigns every request a trace ID. The ID is
// stored in the request context, echoed in the X-Trace-ID response header and
// attached to a request-scoped logger derived from base.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := logger.FromContextOrDefault(ctx, base).With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
