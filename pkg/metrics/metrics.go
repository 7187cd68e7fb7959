// Package metrics registra os coletores Prometheus da aplicação
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "business_model"

// Registry é separado do registro global para que testes possam criar instâncias limpas
type Registry struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	Edits           *prometheus.CounterVec
	Persists        *prometheus.CounterVec
	PersistDuration prometheus.Histogram
	PendingWrites   prometheus.Gauge
	Sessions        prometheus.Gauge
	Seeds           *prometheus.CounterVec
	Reconciled      prometheus.Counter
}

func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por rota, método e status.",
		}, []string{"path", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
		Edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edits_total",
			Help:      "Edições aplicadas ao modelo por coleção e resultado.",
		}, []string{"kind", "result"}),
		Persists: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_total",
			Help:      "Gravações de alterações por resultado.",
		}, []string{"result"}),
		PersistDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "persist_duration_seconds",
			Help:      "Duração das transações de gravação.",
			Buckets:   prometheus.DefBuckets,
		}),
		PendingWrites: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_writes",
			Help:      "Alterações aguardando o intervalo de debounce.",
		}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Modelos de usuários mantidos em memória.",
		}),
		Seeds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seeds_total",
			Help:      "Tentativas de seed por resultado.",
		}, []string{"result"}),
		Reconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciled_records_total",
			Help:      "Registros regravados por terem campos derivados defasados.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.HTTPRequests,
		r.HTTPDuration,
		r.Edits,
		r.Persists,
		r.PersistDuration,
		r.PendingWrites,
		r.Sessions,
		r.Seeds,
		r.Reconciled,
	)

	return r
}

// Handler expõe os coletores no formato texto do Prometheus
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer permite inspecionar os valores registrados
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
