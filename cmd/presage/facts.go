package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var factsCmd = &cobra.Command{
	Use:   "facts [KEY]",
	Short: "Show the precompiled entailment table",
	Long: `Prints, for each predicate key, everything that asserting the key
alone settles: the keys it implies and the keys it rules out. With an
argument, only that key's row is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFacts,
}

func runFacts(cmd *cobra.Command, args []string) error {
	compiled, err := knowledge()
	if err != nil {
		return err
	}

	keys := compiled.Keys
	if len(args) == 1 {
		if _, ok := compiled.Closure[args[0]]; !ok {
			return fmt.Errorf("no closure row for %q", args[0])
		}
		keys = []string{args[0]}
	}

	rows := make([]table.Row, 0, len(keys))
	widest := [3]int{len("key"), len("implies"), len("excludes")}
	for _, key := range keys {
		ent := compiled.Closure[key]
		implies := otherNames(ent.Implies, key)
		excludes := otherNames(ent.Excludes, "")
		row := table.Row{key, implies, excludes}
		for i, cell := range row {
			if len(cell) > widest[i] {
				widest[i] = len(cell)
			}
		}
		rows = append(rows, row)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "key", Width: widest[0]},
			{Title: "implies", Width: widest[1]},
			{Title: "excludes", Width: widest[2]},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	fmt.Println(t.View())
	return nil
}

// otherNames renders a closure cell, dropping the reflexive self entry
// so rows read as consequences only.
func otherNames(set map[string]bool, self string) string {
	names := make([]string, 0, len(set))
	for name := range set {
		if name == self {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
