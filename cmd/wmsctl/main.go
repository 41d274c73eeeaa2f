// Command wmsctl is the operator console for the warehouse workflow backend.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/internal/app"
	"github.com/fastygo/warehouse-console/internal/config"
	"github.com/fastygo/warehouse-console/pkg/logger"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
)

type globals struct {
	apiURL   string
	logLevel string
	backend  string

	console *app.Console
	logger  *zap.Logger
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:           "wmsctl",
		Short:         "Warehouse workflow console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["offline"] == "true" {
				return nil
			}
			return g.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return g.close()
		},
	}

	cmd.PersistentFlags().StringVar(&g.apiURL, "api", "", "Backend API base URL (overrides API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.backend, "session-backend", "", "Session store: bolt, redis or memory")

	cmd.AddCommand(
		loginCmd(g),
		logoutCmd(g),
		whoamiCmd(g),
		profileCmd(g),
		listCmd(g),
		getCmd(g),
		importCmd(g),
		outboundCmd(g),
		confirmationCmd(g),
		notificationsCmd(g),
		dashboardCmd(g),
		tasksCmd(g),
		navCmd(g),
		watchCmd(g),
		dispatchCmd(g),
		stateCmd(g),
		versionCmd(),
	)
	return cmd
}

func (g *globals) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if g.apiURL != "" {
		cfg.API.BaseURL = g.apiURL
	}
	if g.logLevel != "" {
		cfg.Logger.Level = g.logLevel
	}
	if g.backend != "" {
		cfg.Session.Backend = g.backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	g.logger, err = logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Output:   os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	g.console, err = app.New(ctx, cfg, g.logger)
	return err
}

func (g *globals) close() error {
	if g.console == nil {
		return nil
	}
	err := g.console.Close(context.Background())
	_ = g.logger.Sync()
	g.console = nil
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{"offline": "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wmsctl version %s (build: %s)\n", Version, BuildTime)
		},
	}
}
