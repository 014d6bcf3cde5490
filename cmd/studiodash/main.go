package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bantamhq/studiodash/internal/backend"
	"github.com/bantamhq/studiodash/internal/config"
	"github.com/bantamhq/studiodash/internal/dashboard"
	"github.com/bantamhq/studiodash/internal/logging"
	"github.com/bantamhq/studiodash/internal/tui"
)

var (
	configPath string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "studiodash",
		Short: "Terminal dashboard for the project scaffolding service",
		Long: `studiodash mirrors the state of the project scaffolding service: the open
document, the registered project and the project files. It can also create
new projects and expose the service to a browser through a local gateway.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $STUDIODASH_CONFIG or ~/.config/studiodash/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(
		newServeCmd(),
		newStatusCmd(),
		newLsCmd(),
		newInitCmd(),
		newConfigCmd(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	_ = logging.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return runStatus(cmd, args)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, cfg.Log.Output); err != nil {
		return err
	}

	logging.L().Info("dashboard starting", zapBackend(cfg))

	return tui.Run(cmd.Context(), newClient(cfg), cfg.Backend.URL, dashboardOptions(cfg)...)
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// setupLogging starts the global logger writing to output.
func setupLogging(cfg *config.Config, output string) error {
	err := logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: output,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	if logLevel != "" {
		logging.SetLevel(logLevel)
	}
	return nil
}

func newClient(cfg *config.Config) *backend.Client {
	return backend.New(cfg.Backend.URL, cfg.Backend.Timeout.Duration)
}

func dashboardOptions(cfg *config.Config) []dashboard.Option {
	return []dashboard.Option{
		dashboard.WithPollInterval(cfg.Dashboard.PollInterval.Duration),
		dashboard.WithSettleDelay(cfg.Dashboard.SettleDelay.Duration),
		dashboard.WithLogger(logging.Named("dashboard")),
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}
