package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/dlyt/authstore"
	"github.com/s0up4200/dlyt/config"
	"github.com/s0up4200/dlyt/dlyt"
	"github.com/s0up4200/dlyt/filter"
	"github.com/s0up4200/dlyt/notify"
)

var (
	cfgFile    string
	baseURL    string
	jsonOutput bool

	cfg     *config.Config
	logger  zerolog.Logger
	store   *authstore.Store
	sink    *notify.Sink
	client  *dlyt.Client
	filters *filter.Manager

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dlyt",
	Short: "Command line client for the dlyt transcription and speech service",
	Long: `dlyt talks to a dlyt API server: fetch video metadata and transcripts,
browse processing and speech synthesis history, manage your account and session,
and count the characters a document will consume.`,
	PersistentPreRunE: initializeApp,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// SetVersion records build information shown by --version and used by update
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, built)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// API failures were already shown as a notification
		if _, ok := dlyt.AsAPIError(err); !ok {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml, ~/.dlyt/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL, overrides api.base_url")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL = baseURL
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	logger = setupLogger(cfg.Logging)

	sink = notify.NewSink(
		notify.WithRenderer(notify.NewTerminalRenderer(os.Stderr)),
		notify.WithDuration(cfg.Notify.Duration),
		notify.WithLogger(logger),
	)

	storage, err := authstore.NewFileStorage(cfg.Auth.StorePath)
	if err != nil {
		return fmt.Errorf("failed to open credentials store: %w", err)
	}
	store = authstore.New(storage, logger)

	policy, err := dlyt.ParseCredentialsPolicy(cfg.API.Credentials)
	if err != nil {
		return err
	}

	client, err = dlyt.NewClient(cfg.API.BaseURL, store, sink, logger,
		dlyt.WithTimeout(cfg.API.Timeout),
		dlyt.WithCredentialsPolicy(policy),
		dlyt.WithUserAgent(userAgent()),
	)
	if err != nil {
		return fmt.Errorf("failed to create dlyt client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	logger.Debug().
		Str("base_url", cfg.API.BaseURL).
		Str("config", cfg.File).
		Msg("Initialized")

	return nil
}

func userAgent() string {
	if cfg.API.UserAgent != "" {
		return cfg.API.UserAgent
	}
	return "dlyt-cli/" + version
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
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

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
