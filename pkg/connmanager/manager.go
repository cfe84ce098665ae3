package connmanager

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ajitpratap0/connshare/pkg/errors"
	"github.com/ajitpratap0/connshare/pkg/logger"
	"github.com/ajitpratap0/connshare/pkg/provider"
	"github.com/ajitpratap0/connshare/pkg/txn"
)

// Config contains the manager tunables.
type Config struct {
	// Providers resolves provider identifiers; nil means the package-level
	// default registry.
	Providers *provider.Registry
	// MaxRetries is the default number of additional open attempts after
	// the first.
	MaxRetries int
	// RetryDelay is the default linear backoff unit.
	RetryDelay time.Duration
	// SeparateByGoroutine keys sharing scopes by calling goroutine.
	SeparateByGoroutine bool
	// Logger overrides the global logger.
	Logger *zap.Logger
}

// DefaultConfig returns the stock tunables: 5 retries, 2s backoff unit,
// goroutine separation on.
func DefaultConfig() Config {
	return Config{
		Providers:           provider.Default(),
		MaxRetries:          5,
		RetryDelay:          2 * time.Second,
		SeparateByGoroutine: true,
	}
}

// entry is the per-key slot in the registry. Its lock serializes open and
// refcount transitions for one key only; the registry mutex is held just
// long enough to look the entry up or insert it.
type entry struct {
	mu  sync.Mutex
	rec *Record
}

// Manager is the shared connection registry.
type Manager struct {
	cfg    Config
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]*entry

	lmu       sync.RWMutex
	listeners []LifecycleListener
}

// New creates a manager from the given config. Zero-valued Providers and
// Logger fields fall back to the package defaults.
func New(cfg Config) *Manager {
	if cfg.Providers == nil {
		cfg.Providers = provider.Default()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}
	return &Manager{
		cfg:     cfg,
		logger:  log.With(zap.String("component", "connmanager")),
		entries: make(map[string]*entry),
	}
}

// AddListener registers a lifecycle listener. Listeners run synchronously
// in registration order.
func (m *Manager) AddListener(l LifecycleListener) {
	m.lmu.Lock()
	m.listeners = append(m.listeners, l)
	m.lmu.Unlock()
}

// Acquire returns a shared record for the identity's sharing scope,
// incrementing its reference count, or opens a new native connection when
// the scope has none. The transaction snapshot may be nil. ctx is forwarded
// to the native open; the retry loop itself runs to completion or
// exhaustion.
func (m *Manager) Acquire(ctx context.Context, identity provider.Identity, snap *txn.Snapshot, opts ...AcquireOption) (*Record, error) {
	if !identity.Valid() {
		return nil, errors.New(errors.ErrorTypeValidation, "identity needs a name and a provider")
	}

	opt := m.options(opts)
	key := BuildKey(identity.Name, snap, currentGoroutineID(), m.cfg.SeparateByGoroutine)

	for {
		m.mu.Lock()
		e, ok := m.entries[key]
		if !ok {
			e = &entry{}
			m.entries[key] = e
		}
		m.mu.Unlock()

		e.mu.Lock()

		// The entry may have been removed between lookup and lock; a
		// stale entry must not be repopulated.
		m.mu.Lock()
		current := m.entries[key]
		m.mu.Unlock()
		if current != e {
			e.mu.Unlock()
			continue
		}

		if e.rec != nil {
			e.rec.mu.Lock()
			e.rec.refs++
			refs := e.rec.refs
			e.rec.mu.Unlock()
			e.mu.Unlock()
			m.logger.Debug("reusing connection",
				zap.String("key", key),
				zap.Int("ref_count", refs))
			return e.rec, nil
		}

		handle, err := m.openWithRetry(ctx, identity, opt)
		if err != nil {
			m.removeEntry(key, e)
			e.mu.Unlock()
			return nil, err
		}

		rec := newRecord(key, identity, handle, snap)
		e.rec = rec
		e.mu.Unlock()
		m.logger.Debug("opened connection",
			zap.String("key", key),
			zap.String("provider", identity.Provider))
		return rec, nil
	}
}

// AcquireUnpooled opens a private, unshared connection with the same
// open/retry behavior as Acquire but without touching the registry. The
// record starts with one reference and no cache key.
func (m *Manager) AcquireUnpooled(ctx context.Context, identity provider.Identity, snap *txn.Snapshot, opts ...AcquireOption) (*Record, error) {
	if !identity.Valid() {
		return nil, errors.New(errors.ErrorTypeValidation, "identity needs a name and a provider")
	}

	handle, err := m.openWithRetry(ctx, identity, m.options(opts))
	if err != nil {
		return nil, err
	}
	return newRecord("", identity, handle, snap), nil
}

// Release gives back one reference. When the count reaches zero the record
// is removed from the registry (a no-op for unpooled or detached records)
// and the native handle is closed. Release never fails: close errors are
// reported through OnCloseError and suppressed.
func (m *Manager) Release(rec *Record) {
	if rec == nil {
		return
	}

	e := m.attachedEntry(rec)
	if e != nil {
		e.mu.Lock()
		if e.rec != rec {
			e.mu.Unlock()
			e = nil
		}
	}

	rec.mu.Lock()
	if rec.refs > 0 {
		rec.refs--
	}
	zero := rec.refs == 0
	rec.mu.Unlock()

	if zero && e != nil {
		e.rec = nil
		m.removeEntry(rec.key, e)
	}
	if e != nil {
		e.mu.Unlock()
	}

	if zero {
		m.closeAndNotify(rec)
	}
}

// Fail marks a record unusable and detaches it from the registry
// immediately, even while other holders still reference it. Those holders
// keep a private reference to the detached record; the handle closes on the
// final release. When the failing caller held the last reference the handle
// is force-closed here, ignoring close errors.
func (m *Manager) Fail(rec *Record) {
	if rec == nil {
		return
	}

	e := m.attachedEntry(rec)
	if e != nil {
		e.mu.Lock()
		if e.rec != rec {
			e.mu.Unlock()
			e = nil
		}
	}

	rec.mu.Lock()
	if rec.refs > 0 {
		rec.refs--
	}
	rec.failed = true
	zero := rec.refs == 0
	rec.mu.Unlock()

	if e != nil {
		e.rec = nil
		m.removeEntry(rec.key, e)
		e.mu.Unlock()
	}

	m.logger.Warn("connection marked failed",
		zap.String("key", rec.key),
		zap.String("connection", rec.identity.Name))

	if zero {
		_ = rec.closeHandle()
	}
}

// HealthCheck validates that an identity is connectable: resolve, open,
// close. No retry; the first error propagates.
func (m *Manager) HealthCheck(ctx context.Context, identity provider.Identity) error {
	factory, err := m.cfg.Providers.Resolve(identity.Provider)
	if err != nil {
		return err
	}

	handle := factory()
	handle.SetConnectionText(identity.ConnectionText)

	if err := handle.Open(ctx); err != nil {
		return errors.Wrap(err, errors.ErrorTypeHealth, "health check open failed").
			WithDetail("connection", identity.Name)
	}
	if err := handle.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeHealth, "health check close failed").
			WithDetail("connection", identity.Name)
	}
	return nil
}

// ActiveRecords returns how many keys currently hold an open record.
func (m *Manager) ActiveRecords() int {
	m.mu.Lock()
	snapshot := make([]*entry, 0, len(m.entries))
	for _, e := range m.entries {
		snapshot = append(snapshot, e)
	}
	m.mu.Unlock()

	n := 0
	for _, e := range snapshot {
		e.mu.Lock()
		if e.rec != nil {
			n++
		}
		e.mu.Unlock()
	}
	return n
}

// attachedEntry looks up the registry entry a record may still be attached
// to. The caller must re-check e.rec under the entry lock.
func (m *Manager) attachedEntry(rec *Record) *entry {
	if rec.key == "" {
		return nil
	}
	m.mu.Lock()
	e := m.entries[rec.key]
	m.mu.Unlock()
	return e
}

// removeEntry deletes the entry for key, provided it is still the one the
// caller holds.
func (m *Manager) removeEntry(key string, e *entry) {
	m.mu.Lock()
	if m.entries[key] == e {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}

// closeAndNotify runs the release-path close sequence. Close failures are
// reported through OnCloseError and then swallowed.
func (m *Manager) closeAndNotify(rec *Record) {
	m.notifyClosing(rec.identity)
	if err := rec.closeHandle(); err != nil {
		m.notifyCloseError(rec.identity, errors.NewCloseError(err))
		m.logger.Warn("close failed",
			zap.String("connection", rec.identity.Name),
			zap.Error(err))
		return
	}
	m.notifyClosed(rec.identity)
}

func (m *Manager) snapshotListeners() []LifecycleListener {
	m.lmu.RLock()
	defer m.lmu.RUnlock()
	return m.listeners
}

func (m *Manager) notifyOpening(identity provider.Identity) {
	for _, l := range m.snapshotListeners() {
		l.OnOpening(identity)
	}
}

func (m *Manager) notifyOpened(identity provider.Identity, attempt int) {
	for _, l := range m.snapshotListeners() {
		l.OnOpened(identity, attempt)
	}
}

func (m *Manager) notifyOpenError(identity provider.Identity, attempt int, err error) {
	for _, l := range m.snapshotListeners() {
		l.OnOpenError(identity, attempt, err)
	}
}

func (m *Manager) notifyClosing(identity provider.Identity) {
	for _, l := range m.snapshotListeners() {
		l.OnClosing(identity)
	}
}

func (m *Manager) notifyClosed(identity provider.Identity) {
	for _, l := range m.snapshotListeners() {
		l.OnClosed(identity)
	}
}

func (m *Manager) notifyCloseError(identity provider.Identity, err error) {
	for _, l := range m.snapshotListeners() {
		l.OnCloseError(identity, err)
	}
}
