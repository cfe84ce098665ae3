package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ajitpratap0/connshare/internal/cli"
	"github.com/ajitpratap0/connshare/pkg/logger"

	// Import built-in providers to register them
	_ "github.com/ajitpratap0/connshare/pkg/provider/builtin/kafka"
	_ "github.com/ajitpratap0/connshare/pkg/provider/builtin/mongodb"
	_ "github.com/ajitpratap0/connshare/pkg/provider/builtin/mysql"
	_ "github.com/ajitpratap0/connshare/pkg/provider/builtin/postgres"
	_ "github.com/ajitpratap0/connshare/pkg/provider/builtin/snowflake"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}
