// Command venuefill enriches a venue catalog with coordinates, photos and
// social handles looked up from the Google Places API.
//
// Every subcommand is resumable: interrupt it and run it again to continue
// where it stopped.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/maruel/venuefill/internal/config"
	"github.com/maruel/venuefill/internal/enrich"
	"github.com/maruel/venuefill/internal/vcs"
)

var rootCmd = &cobra.Command{
	Use:           "venuefill",
	Short:         "Enrich a venue catalog from the Google Places API",
	Long:          "venuefill looks up coordinates and photos for every venue of a catalog source file, patches the catalog in place and maintains a photo index.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initLogger(flagLogLevel)
	},
}

var (
	flagConfig   string
	flagLogLevel string
	flagAPIKey   string
	flagCommit   bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "venuefill.yaml", "Configuration file; defaults apply when missing")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Places API key (overrides "+config.APIKeyEnv+" env var)")
	rootCmd.PersistentFlags().BoolVar(&flagCommit, "commit", false, "Commit the written files to the enclosing git repository")
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "venuefill: %v\n", err)
		os.Exit(1)
	}
}

func initLogger(level string) error {
	ll := &slog.LevelVar{}
	if err := ll.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:       ll,
		TimeFormat:  "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:     !isatty.IsTerminal(os.Stderr.Fd()),
		ReplaceAttr: dropEmpty,
	}))
	slog.SetDefault(logger)
	return nil
}

// dropEmpty removes zero-valued attributes from log lines.
func dropEmpty(_ []string, a slog.Attr) slog.Attr {
	skip := false
	switch t := a.Value.Any().(type) {
	case string:
		skip = t == ""
	case bool:
		skip = !t
	case uint64:
		skip = t == 0
	case int64:
		skip = t == 0
	case float64:
		skip = t == 0
	case time.Time:
		skip = t.IsZero()
	case time.Duration:
		skip = t == 0
	case nil:
		skip = true
	}
	if skip {
		return slog.Attr{}
	}
	return a
}

// loadConfig loads the configuration named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", flagConfig, err)
	}
	return cfg, nil
}

// apiKey returns the API key from the flag or the environment.
func apiKey() (string, error) {
	if flagAPIKey != "" {
		return flagAPIKey, nil
	}
	if k := os.Getenv(config.APIKeyEnv); k != "" {
		return k, nil
	}
	return "", fmt.Errorf("API key required: set --api-key flag or %s environment variable", config.APIKeyEnv)
}

// newRunner returns a runner reporting to stdout. Pipelines that never reach
// the network get a runner without an API key.
func newRunner(cfg *config.Config, needKey bool) (*enrich.Runner, error) {
	key := ""
	if needKey {
		var err error
		if key, err = apiKey(); err != nil {
			return nil, err
		}
	}
	return enrich.NewRunner(cfg, key, &enrich.CLIProgress{Out: os.Stdout}), nil
}

// finish commits the files written by a run when requested. A run that
// aborted still commits what it persisted.
func finish(cfg *config.Config, s *enrich.Summary, runErr error) error {
	if s == nil || (!flagCommit && !cfg.Git.Commit) || len(s.Written) == 0 {
		return runErr
	}
	msg := "venuefill: " + s.String()
	hash, err := vcs.Commit(s.Written, msg, vcs.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail})
	switch {
	case errors.Is(err, vcs.ErrNotRepository):
		slog.Warn("Not committing; not in a git repository")
	case err != nil:
		return errors.Join(runErr, fmt.Errorf("failed to commit: %w", err))
	case hash != "":
		slog.Info("Committed", "hash", hash, "files", len(s.Written))
	}
	return runErr
}
