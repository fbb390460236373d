// Package commands implements the obofang CLI commands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/obofang/pkg/config"
	"github.com/Sumatoshi-tech/obofang/pkg/observability"
	"github.com/Sumatoshi-tech/obofang/pkg/version"
)

// NewRootCommand builds the obofang command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "obofang",
		Short: "Streaming parser for OBO ontologies",
		Long: `obofang parses OBO 1.2/1.4 ontology files (plain, gzip, zstd or lz4)
into term tables and reports on them.

Commands:
  parse     Parse ontology files and print a summary
  diff      Compare two ontology files
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: obofang.yaml in ., ./config, ~/.config/obofang)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(NewParseCommand())
	rootCmd.AddCommand(NewDiffCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewVersionCommand prints build metadata.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// session is what every command needs after startup: merged configuration,
// telemetry providers and the parse instruments.
type session struct {
	cfg       *config.Config
	providers observability.Providers
	metrics   *observability.ParseMetrics
	noColor   bool
}

func (s *session) logger() *slog.Logger {
	return s.providers.Logger
}

// setup loads configuration, applies the persistent flag overrides, and
// initializes observability. mutate may adjust the config before telemetry
// starts. Callers must call shutdown.
func setup(cmd *cobra.Command, mode observability.AppMode, mutate func(*config.Config)) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor || color.NoColor {
		cfg.Output.Color = false
	}

	if mutate != nil {
		mutate(cfg)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	obsCfg := cfg.ObservabilityConfig(version.Resolved())
	obsCfg.Mode = mode
	obsCfg.LogWriter = cmd.ErrOrStderr()

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewParseMetrics(providers.Meter)
	if err != nil {
		return nil, errorsJoinShutdown(cmd.Context(), providers, fmt.Errorf("init metrics: %w", err))
	}

	return &session{cfg: cfg, providers: providers, metrics: metrics, noColor: !cfg.Output.Color}, nil
}

func (s *session) shutdown(ctx context.Context) error {
	// The command context may already be canceled; telemetry still flushes.
	err := s.providers.Shutdown(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("shutdown observability: %w", err)
	}

	return nil
}

func errorsJoinShutdown(ctx context.Context, providers observability.Providers, err error) error {
	shutdownErr := providers.Shutdown(context.WithoutCancel(ctx))
	if shutdownErr != nil {
		return fmt.Errorf("%w (shutdown: %w)", err, shutdownErr)
	}

	return err
}
