package observability

import (
	"fmt"

	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rulegen"

// Metrics holds the collectors fed by the generator hooks.
type Metrics struct {
	Generations   *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
	Depth         prometheus.Histogram
	Expansions    *prometheus.CounterVec
	UndefinedHits *prometheus.CounterVec
	DepthExceeded *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of completed generations",
			},
			[]string{"root", "seeded"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Duration of a single generation",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"root"},
		),
		Depth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_depth",
				Help:      "Deepest rule expansion reached by a generation",
				Buckets:   prometheus.LinearBuckets(0, 2, 11),
			},
		),
		Expansions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "symbol_expansions_total",
				Help:      "Total number of rule expansions per symbol",
			},
			[]string{"symbol"},
		),
		UndefinedHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "undefined_symbols_total",
				Help:      "Total number of references to symbols with no rules",
			},
			[]string{"symbol"},
		),
		DepthExceeded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "depth_exceeded_total",
				Help:      "Total number of expansions cut by the depth limit",
			},
			[]string{"symbol"},
		),
	}

	for _, c := range []prometheus.Collector{m.Generations, m.Duration, m.Depth, m.Expansions, m.UndefinedHits, m.DepthExceeded} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSymbolExpand: func(e *domain.SymbolEvent) {
			m.Expansions.WithLabelValues(e.Symbol).Inc()
		},
		OnUndefinedSymbol: func(e *domain.SymbolEvent) {
			m.UndefinedHits.WithLabelValues(e.Symbol).Inc()
		},
		OnDepthExceeded: func(e *domain.SymbolEvent) {
			m.DepthExceeded.WithLabelValues(e.Symbol).Inc()
		},
		OnGenerate: func(e *domain.GenerateEvent) {
			m.Generations.WithLabelValues(e.Root, fmt.Sprint(e.Seeded)).Inc()
			m.Duration.WithLabelValues(e.Root).Observe(e.Duration.Seconds())
			m.Depth.Observe(float64(e.Depth))
		},
	}
}
