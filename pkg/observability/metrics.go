package observability

import (
	"log/slog"
	"time"

	"github.com/aretw0/mystem/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes recorded by ObserveRequest.
const (
	OutcomeOK           = "ok"
	OutcomeCacheHit     = "cache_hit"
	OutcomeDecodeError  = "decode_error"
	OutcomeGrammemError = "grammem_error"
	OutcomeError        = "error"
)

// Cache lookup results recorded by ObserveCache.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics groups the collectors exported by the analyzer.
type Metrics struct {
	spawns    *prometheus.CounterVec
	exits     prometheus.Counter
	exchanges *prometheus.HistogramVec
	requests  *prometheus.CounterVec
	cache     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		spawns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mystem_worker_spawns_total",
				Help: "Total number of mystem worker processes started",
			},
			[]string{"kind"},
		),
		exits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mystem_worker_exits_total",
				Help: "Total number of observed mystem worker exits",
			},
		),
		exchanges: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mystem_exchange_duration_seconds",
				Help:    "Duration of request/response round trips with the worker",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"outcome"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mystem_requests_total",
				Help: "Total number of stemming requests by outcome",
			},
			[]string{"outcome"},
		),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mystem_cache_lookups_total",
				Help: "Total number of response cache lookups by result",
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.spawns, m.exits, m.exchanges, m.requests, m.cache)
	}
	return m
}

// ObserveRequest counts one Stemming call.
func (m *Metrics) ObserveRequest(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

// ObserveCache counts one cache lookup.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.cache.WithLabelValues(result).Inc()
}

// Hooks returns lifecycle hooks that record worker spawns, exits and
// exchange latency.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	if m == nil {
		return domain.LifecycleHooks{}
	}
	return domain.LifecycleHooks{
		OnSpawn: func(e *domain.WorkerEvent) {
			kind := "start"
			if e.Restart {
				kind = "restart"
			}
			m.spawns.WithLabelValues(kind).Inc()
		},
		OnExit: func(e *domain.WorkerEvent) {
			m.exits.Inc()
		},
		OnExchange: func(d time.Duration, err error) {
			outcome := OutcomeOK
			if err != nil {
				outcome = OutcomeError
			}
			m.exchanges.WithLabelValues(outcome).Observe(d.Seconds())
		},
	}
}

// LogHooks returns lifecycle hooks that log worker events.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	if logger == nil {
		return domain.LifecycleHooks{}
	}
	return domain.LifecycleHooks{
		OnSpawn: func(e *domain.WorkerEvent) {
			logger.Info("worker_spawn", "pid", e.PID, "restart", e.Restart)
		},
		OnExit: func(e *domain.WorkerEvent) {
			logger.Info("worker_exit", "pid", e.PID, "status", e.Status)
		},
	}
}

// Combine fans every event out to each of hooks in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSpawn: func(e *domain.WorkerEvent) {
			for _, h := range hooks {
				if h.OnSpawn != nil {
					h.OnSpawn(e)
				}
			}
		},
		OnExit: func(e *domain.WorkerEvent) {
			for _, h := range hooks {
				if h.OnExit != nil {
					h.OnExit(e)
				}
			}
		},
		OnExchange: func(d time.Duration, err error) {
			for _, h := range hooks {
				if h.OnExchange != nil {
					h.OnExchange(d, err)
				}
			}
		},
	}
}
