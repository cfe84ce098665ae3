package connmanager

import (
	"sync"
	"time"

	"github.com/ajitpratap0/connshare/pkg/provider"
	"github.com/ajitpratap0/connshare/pkg/txn"
)

// Record is a pooled connection: a native handle plus the bookkeeping the
// manager needs to share it. The registry exclusively owns every live
// record; callers hold references obtained from Acquire and give them back
// through Release or Fail, never by closing the handle directly.
type Record struct {
	mu     sync.Mutex
	refs   int
	failed bool
	closed bool

	key      string // empty for unpooled records
	identity provider.Identity
	handle   provider.Handle
	snapshot *txn.Snapshot
	openedAt time.Time
}

func newRecord(key string, identity provider.Identity, handle provider.Handle, snap *txn.Snapshot) *Record {
	return &Record{
		refs:     1,
		key:      key,
		identity: identity,
		handle:   handle,
		snapshot: snap,
		openedAt: time.Now(),
	}
}

// Handle returns the native connection handle. The handle stays valid until
// the caller's reference is released.
func (r *Record) Handle() provider.Handle {
	return r.handle
}

// Identity returns the connection identity the record was opened for.
func (r *Record) Identity() provider.Identity {
	return r.identity
}

// Key returns the cache key, or "" for unpooled records.
func (r *Record) Key() string {
	return r.key
}

// Snapshot returns the transaction snapshot captured at open time.
func (r *Record) Snapshot() *txn.Snapshot {
	return r.snapshot
}

// OpenedAt returns when the native handle was opened.
func (r *Record) OpenedAt() time.Time {
	return r.openedAt
}

// RefCount returns the current number of holders.
func (r *Record) RefCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs
}

// Failed reports whether Fail was called on the record.
func (r *Record) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// closeHandle closes the native handle at most once.
func (r *Record) closeHandle() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	return r.handle.Close()
}
