package provider

import (
	"context"
	"database/sql"

	"github.com/ajitpratap0/connshare/pkg/errors"
)

// SQLHandle adapts a database/sql driver to the Handle interface. Open
// performs a one-shot ping so a returned handle is known to be connectable,
// not just parsed.
type SQLHandle struct {
	driverName string
	dsn        string
	db         *sql.DB
}

// NewSQLHandle creates an unopened handle over the named database/sql
// driver. The driver must have been registered by its package init.
func NewSQLHandle(driverName string) *SQLHandle {
	return &SQLHandle{driverName: driverName}
}

// SetConnectionText sets the driver-specific DSN
func (h *SQLHandle) SetConnectionText(text string) {
	h.dsn = text
}

// Open opens the database and verifies it with a single ping.
func (h *SQLHandle) Open(ctx context.Context) error {
	db, err := sql.Open(h.driverName, h.dsn)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "sql open failed").
			WithDetail("driver", h.driverName)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return errors.Wrap(err, errors.ErrorTypeConnection, "sql ping failed").
			WithDetail("driver", h.driverName)
	}

	h.db = db
	return nil
}

// Close closes the underlying database
func (h *SQLHandle) Close() error {
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

// DB exposes the opened *sql.DB. It returns nil before a successful Open.
func (h *SQLHandle) DB() *sql.DB {
	return h.db
}
