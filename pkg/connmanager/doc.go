// Package connmanager shares open database connections across concurrent
// call sites. Callers on the same goroutine, inside the same ambient
// transaction, asking for the same logical connection name receive the same
// reference-counted record instead of a fresh physical connection.
//
// A record's sharing scope is a string cache key derived from the logical
// name, the transaction snapshot, and (by default) the calling goroutine.
// The registry performs an atomic lookup-or-insert per key; each key carries
// its own lock, so a slow open/retry sequence for one key never blocks
// acquisitions of unrelated keys. Earlier designs of this kind of manager
// hold one process-wide lock across the whole open/retry loop, serializing
// every acquisition behind native open latency; that contention point is
// exactly what the per-key entries here avoid.
//
// Opening runs a bounded retry loop with linear backoff (delay, 2*delay,
// 3*delay, ...). A provider name that fails to resolve is treated as an
// ordinary open failure and retried like one; callers who want it fatal can
// pre-validate against the provider registry. When every attempt fails the
// per-attempt errors are aggregated into a single AggregateOpenError.
//
// Releasing decrements the reference count and, at zero, removes the record
// and closes the handle. Release never returns an error; close failures are
// reported through the close-error listener and suppressed. Fail detaches a
// broken record from the registry immediately, even while other holders
// still reference it; those holders keep a private reference to the
// detached record and the handle closes on their final release.
package connmanager
