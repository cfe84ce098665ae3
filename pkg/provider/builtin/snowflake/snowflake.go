// Package snowflake registers the Snowflake connection provider.
package snowflake

import (
	"github.com/ajitpratap0/connshare/pkg/provider"

	// Register the snowflake database/sql driver
	_ "github.com/snowflakedb/gosnowflake"
)

func init() {
	_ = provider.Register("snowflake", func() provider.Handle {
		return provider.NewSQLHandle("snowflake")
	})
}
