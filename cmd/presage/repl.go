package main

import (
	"github.com/spf13/cobra"

	"presage/cmd/presage/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive query session",
	Long: `Starts an interactive session. Type a proposition to resolve it,
or one of the session commands:

  :assume P   add P to the session's background assumptions
  :forget P   remove P from the background assumptions
  :global     list the background assumptions in effect
  :clear      drop all background assumptions
  :facts K    show the entailment row for key K
  :quit       leave`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := engine()
		if err != nil {
			return err
		}
		return ui.Run(resolver)
	},
}
