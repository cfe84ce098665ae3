package metrics

import (
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/ajitpratap0/connshare/pkg/errors"
	"github.com/ajitpratap0/connshare/pkg/provider"
)

func ordersIdentity() provider.Identity {
	return provider.Identity{Name: "orders", Provider: "postgres"}
}

func TestListenerOpenLifecycle(t *testing.T) {
	l := NewListener(prometheus.NewRegistry())

	l.OnOpening(ordersIdentity())
	l.OnOpened(ordersIdentity(), 0)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(
		l.opensTotal.WithLabelValues("postgres", "success")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(
		l.activeHandles.WithLabelValues("postgres")))

	l.OnClosing(ordersIdentity())
	l.OnClosed(ordersIdentity())

	assert.Equal(t, 1.0, promtestutil.ToFloat64(
		l.closesTotal.WithLabelValues("postgres", "success")))
	assert.Equal(t, 0.0, promtestutil.ToFloat64(
		l.activeHandles.WithLabelValues("postgres")))
}

func TestListenerOpenErrors(t *testing.T) {
	l := NewListener(prometheus.NewRegistry())

	attemptErr := stderrors.New("refused")
	l.OnOpening(ordersIdentity())
	l.OnOpenError(ordersIdentity(), 0, attemptErr)
	l.OnOpenError(ordersIdentity(), 1, attemptErr)

	agg := errors.NewAggregateOpenError([]error{attemptErr, attemptErr})
	l.OnOpenError(ordersIdentity(), 2, agg)

	assert.Equal(t, 2.0, promtestutil.ToFloat64(
		l.openErrorsTotal.WithLabelValues("postgres", "attempt")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(
		l.openErrorsTotal.WithLabelValues("postgres", "aggregate")))

	l.mu.Lock()
	assert.Empty(t, l.starting, "aggregate clears the pending start mark")
	l.mu.Unlock()
}

func TestListenerCloseError(t *testing.T) {
	l := NewListener(prometheus.NewRegistry())

	l.OnOpening(ordersIdentity())
	l.OnOpened(ordersIdentity(), 0)
	l.OnCloseError(ordersIdentity(), stderrors.New("broken"))

	assert.Equal(t, 1.0, promtestutil.ToFloat64(
		l.closesTotal.WithLabelValues("postgres", "error")))
	assert.Equal(t, 0.0, promtestutil.ToFloat64(
		l.activeHandles.WithLabelValues("postgres")))
}
