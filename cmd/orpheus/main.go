// Package main provides the Orpheus CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petasbytes/orpheus/handlers"
	"github.com/petasbytes/orpheus/internal/config"
	"github.com/petasbytes/orpheus/internal/provider"
	"github.com/petasbytes/orpheus/internal/router"
	"github.com/petasbytes/orpheus/internal/safety"
	"github.com/petasbytes/orpheus/internal/session"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "orpheus",
	Short: "Orpheus - an interactive CLI assistant for the Architect",
	Long: `Orpheus is an interactive command-line assistant. Each query goes to the
first handler that claims it: commit-message suggestions for staged changes,
terminal housekeeping, and a conversational fallback powered by Google's
Gemini model.

Run without arguments to start the interactive session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The session owns the terminal, so default logging stays at
		// warnings; --verbose opens it up to debug.
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the Orpheus version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("orpheus %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config file (default: orpheus.yaml if present)")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runSession wires the assistant together and blocks until the session ends.
func runSession(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	client := provider.NewClient(cfg.Gemini, provider.WithLogger(logger))
	// Handler subprocesses run unbounded: a slow `git diff` blocks the
	// session loop rather than failing it.
	runner := safety.NewRunner(0)

	r := router.New(handlers.Registry(handlers.Deps{
		Generator:  client,
		Runner:     runner,
		Logger:     logger,
		Model:      cfg.Gemini.Model,
		DiffBudget: cfg.Prompt.DiffBudgetRunes,
	}), logger)

	s := session.New(r,
		session.WithLogger(logger),
		session.WithMarkdown(),
	)
	return s.Run(cmd.Context())
}
