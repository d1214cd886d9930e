package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"presage/internal/logic"
	"presage/internal/parser"
)

var askAssumptions []string

var askCmd = &cobra.Command{
	Use:   "ask PROPOSITION",
	Short: "Resolve one proposition",
	Long: `Resolves a proposition such as 'even(x*y)' under zero or more
--assume facts and prints true, false, or unknown.

Example:
  presage ask 'even(x*y)' --assume 'even(x)' --assume 'integer(y)'`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringArrayVarP(&askAssumptions, "assume", "a", nil, "assumption proposition (repeatable)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	reg := registry()
	prop, err := parser.ParseProp(args[0], reg)
	if err != nil {
		return err
	}
	assumptions := make([]logic.Prop, 0, len(askAssumptions))
	for _, src := range askAssumptions {
		a, err := parser.ParseProp(src, reg)
		if err != nil {
			return err
		}
		assumptions = append(assumptions, a)
	}

	resolver, err := engine()
	if err != nil {
		return err
	}
	logger.Debug("resolving",
		zap.String("proposition", prop.String()),
		zap.Int("assumptions", len(assumptions)),
	)
	res, err := resolver.Ask(prop, assumptions...)
	if err != nil {
		return err
	}
	fmt.Println(res)
	return nil
}
