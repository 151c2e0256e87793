package middleware

import (
	"net/http"
	"strconv"
	"time"

	"bidportal/internal/logging"
	"bidportal/internal/metrics"
	"bidportal/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics records request counters and latency by route pattern and logs
// one line per request.
func Metrics(reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// the pattern is only complete once routing is done
			pattern := "unknown"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				pattern = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			d := time.Since(start)
			reg.ObserveRequest(pattern, r.Method, strconv.Itoa(status), d)

			var userID int64
			if u := session.CurrentUser(r.Context()); u != nil {
				userID = u.ID
			}
			logging.WithRequest(chimw.GetReqID(r.Context()), userID, pattern).Infow("HTTP request completed",
				"method", r.Method,
				"status_code", status,
				"duration_ms", d.Milliseconds(),
			)
		})
	}
}
