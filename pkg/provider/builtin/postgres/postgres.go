// Package postgres registers the PostgreSQL connection provider, backed by
// the pgx database/sql driver.
package postgres

import (
	"github.com/ajitpratap0/connshare/pkg/provider"

	// Register the pgx database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"
)

func init() {
	_ = provider.Register("postgres", func() provider.Handle {
		return provider.NewSQLHandle("pgx")
	})
}
