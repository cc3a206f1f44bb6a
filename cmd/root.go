package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/s0up4200/primectl/config"
	"github.com/s0up4200/primectl/credentials"
	"github.com/s0up4200/primectl/filter"
	"github.com/s0up4200/primectl/prime"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  zerolog.Logger
	store   *credentials.Store
	client  *prime.Client
	filters *filter.Manager

	// Command flags
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "primectl",
	Short: "A command line client for the Adobe Captivate Prime API",
	Long: `primectl talks to the Adobe Captivate Prime v2 REST API. It keeps the
OAuth access and refresh tokens in a local credentials file, refreshes them
when they expire and follows pagination so every command returns complete
result sets.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadSettings loads the configuration and sets up logging
func loadSettings(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger = setupLogger(cfg.Logging)
	return nil
}

// initializeApp initializes the configuration, credentials and client
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := loadSettings(cmd, args); err != nil {
		return err
	}

	var err error
	store, err = credentials.Open(afero.NewOsFs(), cfg.Prime.CredentialsFile, cfg.Prime.Overrides(), logger)
	if err != nil {
		return fmt.Errorf("failed to open credentials: %w", err)
	}

	opts := []prime.Option{
		prime.WithTimeout(cfg.Prime.Timeout),
		prime.WithMaxAuthRetries(cfg.Prime.MaxAuthRetries),
		prime.WithUserAgent("primectl/" + version),
	}
	if cfg.Prime.BaseURL != "" {
		opts = append(opts, prime.WithBaseURL(cfg.Prime.BaseURL))
	}

	client, err = prime.NewClient(store, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Prime client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	logger.Debug().
		Str("server_instance", store.Credentials().ServerInstance).
		Str("credentials_file", store.Path()).
		Msg("Prime client ready")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// getFilterExpression determines the filter to apply, if any
func getFilterExpression() (filter.CompiledFilter, error) {
	// Priority: command line filter > preset
	if filterExpr != "" {
		f, err := filters.Compile(filterExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return f, nil
	}

	if preset != "" {
		f, ok := filters.GetFilter(strings.ToLower(preset))
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", preset)
		}
		return f, nil
	}

	return nil, nil
}

// addFilterFlags registers --filter and --preset on a command
func addFilterFlags(c *cobra.Command) {
	c.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the fetched records")
	c.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}
