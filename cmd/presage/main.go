// Command presage answers predicate queries about symbolic expressions
// from a compiled knowledge base: compile the knowledge artifact, ask
// one-shot questions, inspect the entailment table, or start an
// interactive session.
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"presage/internal/assume"
	"presage/internal/assume/handlers"
	"presage/internal/config"
	"presage/internal/kb"
)

var (
	// Global flags
	verbose      bool
	cfgPath      string
	artifactPath string
	solveTimeout time.Duration

	cfg    *config.Config
	logger *zap.Logger

	installOnce sync.Once
)

var rootCmd = &cobra.Command{
	Use:   "presage",
	Short: "presage - assumption query engine",
	Long: `presage answers boolean questions about symbolic expressions
("is x*y even given that x is even and y is an integer?") by combining
structural evaluation rules, a precompiled entailment closure, and a
SAT-based inference fallback over a hand-authored axiom set.

Answers are three-valued: true, false, or unknown when the assumptions
do not settle the question either way.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if artifactPath != "" {
			cfg.Artifact = artifactPath
		}
		if cmd.Flags().Changed("timeout") {
			cfg.SolveTimeout = config.Duration(solveTimeout)
		}

		zc := zap.NewProductionConfig()
		if !cfg.Logging.JSON {
			zc.Encoding = "console"
			zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		}
		level, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zc.Level = zap.NewAtomicLevelAt(level)
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// registry returns the process vocabulary with the structural handlers
// installed exactly once.
func registry() *assume.Registry {
	reg := assume.DefaultRegistry()
	installOnce.Do(func() { handlers.Install(reg) })
	return reg
}

// knowledge loads the configured artifact, or compiles the default
// axiom set in process when none is configured.
func knowledge() (*kb.Compiled, error) {
	if cfg.Artifact == "" {
		logger.Debug("no artifact configured, compiling in process")
		return kb.Default()
	}
	logger.Debug("loading knowledge artifact", zap.String("path", cfg.Artifact))
	return kb.ReadFile(cfg.Artifact)
}

// engine assembles the resolver every query command runs against.
func engine() (*assume.Resolver, error) {
	compiled, err := knowledge()
	if err != nil {
		return nil, err
	}
	return assume.New(assume.Config{
		Registry:     registry(),
		Knowledge:    compiled,
		SolveTimeout: cfg.SolveTimeout.Std(),
	})
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "presage.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&artifactPath, "artifact", "", "compiled knowledge artifact (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&solveTimeout, "timeout", 0, "SAT fallback budget, 0 for unbounded (overrides config)")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(factsCmd)
	rootCmd.AddCommand(replCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
