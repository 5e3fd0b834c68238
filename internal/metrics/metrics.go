package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	AsksTotal    prometheus.Counter
	LLMFailures  prometheus.Counter
	LLMLatency   prometheus.Histogram
	LookupErrors *prometheus.CounterVec
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			AsksTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "tripwise",
				Name:      "asks_total",
				Help:      "Total /assistant/ask turns handled",
			}),
			LLMFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "tripwise",
				Name:      "llm_failures_total",
				Help:      "Total model calls that fell back to heuristic answers",
			}),
			LLMLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: "tripwise",
				Name:      "llm_latency_seconds",
				Help:      "Model runtime call latency",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			}),
			LookupErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "tripwise",
				Name:      "lookup_errors_total",
				Help:      "External data lookups that failed, by source",
			}, []string{"source"}),
			CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "tripwise",
				Name:      "lookup_cache_hits_total",
				Help:      "External lookup cache hits",
			}),
			CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "tripwise",
				Name:      "lookup_cache_misses_total",
				Help:      "External lookup cache misses",
			}),
		}
		prometheus.MustRegister(
			global.AsksTotal, global.LLMFailures, global.LLMLatency,
			global.LookupErrors, global.CacheHits, global.CacheMisses,
		)
	})
	return global
}
