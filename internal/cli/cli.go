// Package cli implements the connshare command line interface.
package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/connshare/pkg/config"
	"github.com/ajitpratap0/connshare/pkg/connmanager"
	"github.com/ajitpratap0/connshare/pkg/logger"
	"github.com/ajitpratap0/connshare/pkg/observability"
	"github.com/ajitpratap0/connshare/pkg/provider"
)

// Version is stamped by the build.
var Version = "0.1.0"

// NewRootCommand builds the connshare command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "connshare",
		Short: "connshare - shared database connection manager",
		Long: `connshare shares open database connections across concurrent call sites:
callers on the same goroutine and inside the same ambient transaction reuse
one physical connection instead of opening a new one per call.`,
	}

	root.AddCommand(newVersionCommand())
	root.AddCommand(newProvidersCommand())
	root.AddCommand(newCheckCommand())
	root.AddCommand(newValidateCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("connshare v%s\n", Version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newProvidersCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List registered connection providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := provider.Names()
			if asJSON {
				out, err := json.MarshalIndent(names, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")
	return cmd
}

func newCheckCommand() *cobra.Command {
	var (
		configPath string
		timeout    time.Duration
		traced     bool
	)

	cmd := &cobra.Command{
		Use:   "check <connection-name>",
		Short: "Health-check a configured connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if err := logger.Init(logger.Config{
				Level:       cfg.Logging.Level,
				Encoding:    cfg.Logging.Encoding,
				Development: cfg.Logging.Development,
			}); err != nil {
				return err
			}

			conn, err := cfg.Connection(args[0])
			if err != nil {
				return err
			}

			m := connmanager.New(connmanager.Config{
				MaxRetries:          cfg.Manager.MaxRetries,
				RetryDelay:          cfg.Manager.RetryDelay.Std(),
				SeparateByGoroutine: cfg.Manager.SeparateByGoroutine,
			})
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if traced {
				if err := observability.InitStdoutTracing(); err != nil {
					return err
				}
				m.AddListener(observability.NewTraceListener())
				defer func() { _ = observability.Shutdown(ctx) }()
			}

			if err := m.HealthCheck(ctx, conn.Identity()); err != nil {
				logger.Get().Error("health check failed",
					zap.String("connection", conn.Name),
					zap.Error(err))
				return err
			}

			fmt.Printf("connection %s is reachable\n", conn.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "connshare.yaml", "configuration file")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "health check timeout")
	cmd.Flags().BoolVar(&traced, "trace", false, "emit OpenTelemetry spans to stdout")
	return cmd
}

func newValidateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse and validate a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			fmt.Printf("configuration valid: %d connection(s)\n", len(cfg.Connections))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "connshare.yaml", "configuration file")
	return cmd
}
