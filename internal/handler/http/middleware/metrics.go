package middleware

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

type metricsWriter struct {
	chiMiddleware.WrapResponseWriter
	metrics *metrics.Metrics
}

func (w *metricsWriter) RecordStoreError(op string) {
	w.metrics.StoreError(op)
}

// Metrics observes every request by its route pattern. Mount it last so
// handlers write to its writer and store failures reach the counter.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &metricsWriter{
				WrapResponseWriter: chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor),
				metrics:            m,
			}

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			var route string
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(r.Method, route, status, time.Since(start))
		}
		return http.HandlerFunc(hfn)
	}
}
