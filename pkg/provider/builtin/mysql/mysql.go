// Package mysql registers the MySQL connection provider.
package mysql

import (
	"github.com/ajitpratap0/connshare/pkg/provider"

	// Register the mysql database/sql driver
	_ "github.com/go-sql-driver/mysql"
)

func init() {
	_ = provider.Register("mysql", func() provider.Handle {
		return provider.NewSQLHandle("mysql")
	})
}
