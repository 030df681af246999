// Package main provides the taskmate CLI entry point.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/taskmate/backend/internal/config"
	"github.com/taskmate/backend/internal/engine"
	"github.com/taskmate/backend/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	jsonOutput bool
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "taskmate",
	Short: "Personal task list with similar-task recommendations",
	Long: `taskmate keeps a personal task list and suggests tasks whose
descriptions resemble a selected one, ranked by TF-IDF cosine similarity.

Configuration comes from TASKMATE_* environment variables, an optional
.env file in the working directory, and an optional YAML file named by
TASKMATE_CONFIG.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at the configured level instead of warnings only")
	rootCmd.Version = Version
}

// newLogger builds the process logger from cfg. quiet caps the level at
// warn so one-shot commands keep stderr clean.
func newLogger(cfg config.LogConfig, quiet bool) *logrus.Logger {
	logger := logrus.New()
	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		logger.WithError(err).Warnf("Unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	if quiet && level > logrus.WarnLevel {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// app bundles what every command needs.
type app struct {
	cfg    *config.Config
	log    *logrus.Entry
	store  storage.TaskStorage
	engine *engine.Engine
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close storage")
	}
}

func openApp(quiet bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, &exitError{code: ExitConfigError, err: err}
	}

	entry := newLogger(cfg.Log, quiet).WithField("service", "taskmate")

	store, err := storage.Open(cfg.Storage, entry.WithField("component", "storage"))
	if err != nil {
		return nil, &exitError{code: ExitConfigError, err: err}
	}

	eng, err := engine.NewEngine(cfg, entry.WithField("component", "engine"), store)
	if err != nil {
		store.Close()
		return nil, &exitError{code: ExitDataError, err: err}
	}

	return &app{cfg: cfg, log: entry, store: store, engine: eng}, nil
}
