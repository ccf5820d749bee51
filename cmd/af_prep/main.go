// Package main provides the af_prep CLI, which prepares structure prediction
// jobs for protein-DNA complexes and collects their results.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/jonathan/af-prep/internal/config"
	"github.com/jonathan/af-prep/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	// cfg is the effective configuration, resolved before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "af_prep",
	Short: "AlphaFold3 job preparation and result collection",
	Long: "af_prep fetches protein sequences for transcription factor genes, builds one AlphaFold3 job descriptor per protein-DNA complex, " +
		"relocates the tool's outputs into a flat layout and aggregates per-job confidence summaries into one report.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// setup resolves configuration and starts the run-scoped logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	runID := uuid.New().String()
	if err := logger.InitLogger(level, zap.String("run_id", runID), zap.String("command", cmd.Name())); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
