// Package metrics provides Prometheus instrumentation for the connection
// manager. Listener implements the manager's lifecycle listener interface,
// so installing metrics is one AddListener call:
//
//	m := connmanager.New(connmanager.DefaultConfig())
//	m.AddListener(metrics.NewListener(prometheus.DefaultRegisterer))
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ajitpratap0/connshare/pkg/errors"
	"github.com/ajitpratap0/connshare/pkg/provider"
)

// Listener records connection lifecycle events as Prometheus metrics.
type Listener struct {
	opensTotal      *prometheus.CounterVec
	openErrorsTotal *prometheus.CounterVec
	closesTotal     *prometheus.CounterVec
	openDuration    *prometheus.HistogramVec
	activeHandles   *prometheus.GaugeVec

	mu       sync.Mutex
	starting map[string]time.Time
}

// NewListener creates a listener with its collectors registered on reg.
func NewListener(reg prometheus.Registerer) *Listener {
	l := &Listener{
		opensTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connshare",
			Name:      "opens_total",
			Help:      "Native open attempts by provider and outcome",
		}, []string{"provider", "status"}),
		openErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connshare",
			Name:      "open_errors_total",
			Help:      "Failed open attempts, including the final aggregate",
		}, []string{"provider", "kind"}),
		closesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connshare",
			Name:      "closes_total",
			Help:      "Handle closes by provider and outcome",
		}, []string{"provider", "status"}),
		openDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "connshare",
			Name:      "open_duration_seconds",
			Help:      "Latency from first open attempt to a usable handle",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"provider"}),
		activeHandles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "connshare",
			Name:      "active_handles",
			Help:      "Currently open native handles",
		}, []string{"provider"}),

		starting: make(map[string]time.Time),
	}

	reg.MustRegister(
		l.opensTotal,
		l.openErrorsTotal,
		l.closesTotal,
		l.openDuration,
		l.activeHandles,
	)
	return l
}

// OnOpening marks the start of an open sequence for duration tracking.
func (l *Listener) OnOpening(identity provider.Identity) {
	l.mu.Lock()
	if _, ok := l.starting[identity.Name]; !ok {
		l.starting[identity.Name] = time.Now()
	}
	l.mu.Unlock()
}

// OnOpened records a successful open and its duration.
func (l *Listener) OnOpened(identity provider.Identity, _ int) {
	l.mu.Lock()
	start, ok := l.starting[identity.Name]
	delete(l.starting, identity.Name)
	l.mu.Unlock()

	l.opensTotal.WithLabelValues(identity.Provider, "success").Inc()
	l.activeHandles.WithLabelValues(identity.Provider).Inc()
	if ok {
		l.openDuration.WithLabelValues(identity.Provider).Observe(time.Since(start).Seconds())
	}
}

// OnOpenError counts a failed attempt, or the exhausted aggregate.
func (l *Listener) OnOpenError(identity provider.Identity, _ int, err error) {
	kind := "attempt"
	if errors.IsAggregateOpen(err) {
		kind = "aggregate"
		l.mu.Lock()
		delete(l.starting, identity.Name)
		l.mu.Unlock()
	}
	l.opensTotal.WithLabelValues(identity.Provider, "error").Inc()
	l.openErrorsTotal.WithLabelValues(identity.Provider, kind).Inc()
}

// OnClosing is a no-op; closes are counted on completion.
func (l *Listener) OnClosing(provider.Identity) {}

// OnClosed records a successful close.
func (l *Listener) OnClosed(identity provider.Identity) {
	l.closesTotal.WithLabelValues(identity.Provider, "success").Inc()
	l.activeHandles.WithLabelValues(identity.Provider).Dec()
}

// OnCloseError records a failed close. The handle is gone either way, so
// the active gauge still drops.
func (l *Listener) OnCloseError(identity provider.Identity, _ error) {
	l.closesTotal.WithLabelValues(identity.Provider, "error").Inc()
	l.activeHandles.WithLabelValues(identity.Provider).Dec()
}
