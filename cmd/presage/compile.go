package main

import (
	"fmt"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"presage/internal/kb"
	"presage/internal/logic"
)

var (
	compileOut   string
	compileCheck bool
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the axiom set into a knowledge artifact",
	Long: `Converts the built-in axiom set to clause form, derives the
per-predicate entailment closure, and writes both as one YAML
artifact. With --check, an existing artifact is compared against a
fresh compilation instead of being overwritten.`,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "presage-kb.yaml", "artifact output path")
	compileCmd.Flags().BoolVar(&compileCheck, "check", false, "verify an existing artifact instead of writing")
}

func runCompile(cmd *cobra.Command, args []string) error {
	start := time.Now()
	compiled, err := kb.Compile(cmd.Context(), kb.DefaultAxioms(), kb.DefaultKeys())
	if err != nil {
		return err
	}
	clauses, err := logic.Clauses(compiled.CNF)
	if err != nil {
		return err
	}
	logger.Info("compiled knowledge base",
		zap.String("id", compiled.ID),
		zap.Int("axioms", compiled.AxiomCount),
		zap.Int("keys", len(compiled.Keys)),
		zap.Int("clauses", len(clauses)),
		zap.Duration("took", time.Since(start)),
	)

	if compileCheck {
		stored, err := kb.ReadFile(compileOut)
		if err != nil {
			return fmt.Errorf("check: %w", err)
		}
		if kb.Same(stored, compiled) {
			fmt.Println("artifact matches a fresh compilation")
			return nil
		}
		diff := cmp.Diff(stored.Closure, compiled.Closure)
		return fmt.Errorf("artifact diverges from a fresh compilation:\n%s", diff)
	}

	if err := kb.WriteFile(compileOut, compiled); err != nil {
		return err
	}
	logger.Info("wrote artifact", zap.String("path", compileOut))
	return nil
}
