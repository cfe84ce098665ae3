package connmanager

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ajitpratap0/connshare/pkg/errors"
	"github.com/ajitpratap0/connshare/pkg/provider"
)

// AcquireOption overrides the manager's retry tunables for one acquisition.
type AcquireOption func(*acquireOptions)

type acquireOptions struct {
	maxRetries int
	retryDelay time.Duration
}

// WithMaxRetries sets the number of additional open attempts after the
// first for this acquisition.
func WithMaxRetries(n int) AcquireOption {
	return func(o *acquireOptions) {
		o.maxRetries = n
	}
}

// WithRetryDelay sets the linear backoff unit for this acquisition. The
// sleep before attempt n+1 is delay*(n+1).
func WithRetryDelay(d time.Duration) AcquireOption {
	return func(o *acquireOptions) {
		o.retryDelay = d
	}
}

func (m *Manager) options(opts []AcquireOption) acquireOptions {
	opt := acquireOptions{
		maxRetries: m.cfg.MaxRetries,
		retryDelay: m.cfg.RetryDelay,
	}
	for _, apply := range opts {
		apply(&opt)
	}
	if opt.maxRetries < 0 {
		opt.maxRetries = 0
	}
	return opt
}

// openWithRetry drives the native open for an identity: up to maxRetries+1
// attempts with linear backoff between them. Each attempt re-resolves the
// provider, so a resolution failure is retried like any other open failure.
// Exhaustion returns an AggregateOpenError carrying every attempt error.
func (m *Manager) openWithRetry(ctx context.Context, identity provider.Identity, opt acquireOptions) (provider.Handle, error) {
	attemptErrs := make([]error, 0, opt.maxRetries+1)

	for attempt := 0; attempt <= opt.maxRetries; attempt++ {
		handle, err := m.openOnce(ctx, identity, attempt)
		if err == nil {
			return handle, nil
		}

		attemptErrs = append(attemptErrs, errors.NewOpenError(attempt, err))
		m.notifyOpenError(identity, attempt, err)
		m.logger.Warn("open attempt failed",
			zap.String("connection", identity.Name),
			zap.String("provider", identity.Provider),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < opt.maxRetries {
			time.Sleep(opt.retryDelay * time.Duration(attempt+1))
		}
	}

	agg := errors.NewAggregateOpenError(attemptErrs)
	m.notifyOpenError(identity, len(attemptErrs), agg)
	m.logger.Error("open attempts exhausted",
		zap.String("connection", identity.Name),
		zap.String("provider", identity.Provider),
		zap.Int("attempts", len(attemptErrs)))
	return nil, agg
}

// openOnce performs a single resolve-construct-open sequence.
func (m *Manager) openOnce(ctx context.Context, identity provider.Identity, attempt int) (provider.Handle, error) {
	factory, err := m.cfg.Providers.Resolve(identity.Provider)
	if err != nil {
		return nil, err
	}

	handle := factory()
	handle.SetConnectionText(identity.ConnectionText)

	m.notifyOpening(identity)
	if err := handle.Open(ctx); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "native open failed")
	}

	m.notifyOpened(identity, attempt)
	return handle, nil
}
