// Package connshare provides a shared database connection manager: open
// connections are reused across concurrent call sites so that code running
// on the same goroutine, inside the same ambient transaction, asking for
// the same logical connection name shares one physical connection instead
// of opening a new one per call.
//
// # Architecture
//
// The manager keeps a registry of reference-counted connection records,
// keyed by a deterministic cache key derived from the connection name, the
// transaction snapshot, and the calling goroutine. Lookup-or-insert of a
// key is atomic, and every key carries its own lock, so a slow open/retry
// sequence for one target never blocks acquisitions of unrelated targets.
//
// Opening goes through a pluggable provider registry (PostgreSQL, MySQL,
// Snowflake, MongoDB and Kafka providers are built in) with a bounded
// linear-backoff retry loop. Releasing decrements the reference count and
// closes the native handle exactly once, when the last holder lets go.
//
// # Quick start
//
//	import (
//	    "context"
//
//	    "github.com/ajitpratap0/connshare/pkg/connmanager"
//	    "github.com/ajitpratap0/connshare/pkg/provider"
//	    "github.com/ajitpratap0/connshare/pkg/txn"
//	    _ "github.com/ajitpratap0/connshare/pkg/provider/builtin/postgres"
//	)
//
//	m := connmanager.New(connmanager.DefaultConfig())
//
//	identity := provider.Identity{
//	    Name:           "orders",
//	    Provider:       "postgres",
//	    ConnectionText: "postgres://app@db:5432/orders",
//	}
//
//	rec, err := m.Acquire(context.Background(), identity, txn.NewSnapshot("tx-81724"))
//	if err != nil {
//	    // err aggregates every failed open attempt
//	}
//	defer m.Release(rec)
//
// # Key packages
//
//	pkg/connmanager - sharing registry, retry engine, lifecycle listeners
//	pkg/provider    - native handle abstraction and provider registry
//	pkg/txn         - ambient transaction snapshots
//	pkg/config      - named connection definitions and manager tunables
//	pkg/errors      - structured error handling
//	pkg/logger      - structured logging
//	pkg/metrics     - Prometheus lifecycle instrumentation
//
// Environment variables are supported in configuration files with
// ${VAR_NAME} syntax.
package connshare
