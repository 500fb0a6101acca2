package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer captures dashboard session telemetry. A nil *Prometheus is a
// valid no-op observer.
type Observer interface {
	RecordAuth(action string, err error)
	RecordFetch(duration time.Duration, err error)
	RecordOpen(kind string)
	RecordPage(page string)
	SetLiveSessions(n int)
}

// Prometheus exports session metrics.
type Prometheus struct {
	authTotal     *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	fetchErrors   prometheus.Counter
	opens         *prometheus.CounterVec
	pageViews     *prometheus.CounterVec
	liveSessions  prometheus.Gauge
}

// NewPrometheus registers the dashboard collectors on reg
// (prometheus.DefaultRegisterer when nil).
func NewPrometheus(namespace string, reg prometheus.Registerer) (*Prometheus, error) {
	if namespace == "" {
		namespace = "clarity"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p := &Prometheus{
		authTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Login, register and role selection attempts by outcome.",
		}, []string{"action", "outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "insights_fetch_duration_seconds",
			Help:      "Latency of insights endpoint requests.",
			Buckets:   prometheus.DefBuckets,
		}),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insights_fetch_errors_total",
			Help:      "Failed insights endpoint requests.",
		}),
		opens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_opens_total",
			Help:      "Headlines and cards opened.",
		}, []string{"kind"}),
		pageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Pages reached after each session event.",
		}, []string{"page"}),
		liveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Sessions held in the in-memory registry.",
		}),
	}

	collectors := []prometheus.Collector{p.authTotal, p.fetchDuration, p.fetchErrors, p.opens, p.pageViews, p.liveSessions}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return nil, fmt.Errorf("register dashboard metric: %w", err)
		}
	}
	return p, nil
}

func (p *Prometheus) RecordAuth(action string, err error) {
	if p == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.authTotal.WithLabelValues(action, outcome).Inc()
}

func (p *Prometheus) RecordFetch(duration time.Duration, err error) {
	if p == nil {
		return
	}
	p.fetchDuration.Observe(duration.Seconds())
	if err != nil {
		p.fetchErrors.Inc()
	}
}

func (p *Prometheus) RecordOpen(kind string) {
	if p == nil {
		return
	}
	p.opens.WithLabelValues(kind).Inc()
}

func (p *Prometheus) RecordPage(page string) {
	if p == nil {
		return
	}
	p.pageViews.WithLabelValues(page).Inc()
}

func (p *Prometheus) SetLiveSessions(n int) {
	if p == nil {
		return
	}
	p.liveSessions.Set(float64(n))
}
