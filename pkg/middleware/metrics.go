package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/business-model-api/pkg/metrics"
)

// Metrics registra contagem e duração das requisições de uma rota.
// O rótulo é o padrão da rota ("/v1/model/:kind"), nunca o caminho com ids.
func Metrics(registry *metrics.Registry, method, path string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			next.ServeHTTP(lrw, r)

			registry.HTTPDuration.WithLabelValues(path, method).Observe(time.Since(startTime).Seconds())
			registry.HTTPRequests.WithLabelValues(path, method, strconv.Itoa(lrw.statusCode)).Inc()
		})
	}
}
