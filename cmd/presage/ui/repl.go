// Package ui implements the interactive query session: a scrollback of
// questions and answers over a single-line prompt, with session
// commands for managing background assumptions.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"presage/internal/assume"
	"presage/internal/parser"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	trueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)  // green
	falseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))            // dim
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))            // orange
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	echoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Run starts the interactive session over the given resolver and
// blocks until the user leaves.
func Run(resolver *assume.Resolver) error {
	m := newModel(resolver)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type model struct {
	resolver *assume.Resolver
	input    textinput.Model
	history  viewport.Model
	lines    []string
	ready    bool
}

func newModel(resolver *assume.Resolver) model {
	input := textinput.New()
	input.Prompt = promptStyle.Render("?- ")
	input.Placeholder = "even(x*y)   or   :assume integer(x)"
	input.Focus()
	return model{
		resolver: resolver,
		input:    input,
		lines: []string{
			noteStyle.Render("presage interactive session. Type a proposition, or :quit to leave."),
		},
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		inputHeight := 2
		if !m.ready {
			m.history = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.history.Width = msg.Width
			m.history.Height = msg.Height - inputHeight
		}
		m.input.Width = msg.Width - len("?- ") - 1
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			if line == ":quit" || line == ":q" {
				return m, tea.Quit
			}
			m.lines = append(m.lines, echoStyle.Render("?- "+line))
			m.lines = append(m.lines, m.eval(line)...)
			m.refresh()
			return m, nil
		}
	}

	var inputCmd, histCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.history, histCmd = m.history.Update(msg)
	return m, tea.Batch(inputCmd, histCmd)
}

func (m *model) refresh() {
	m.history.SetContent(strings.Join(m.lines, "\n"))
	m.history.GotoBottom()
}

func (m model) View() string {
	if !m.ready {
		return "starting..."
	}
	return m.history.View() + "\n" + m.input.View()
}

// eval interprets one input line and returns the lines to append to
// the scrollback.
func (m model) eval(line string) []string {
	if strings.HasPrefix(line, ":") {
		return m.command(line)
	}
	prop, err := parser.ParseProp(line, m.resolver.Registry())
	if err != nil {
		return []string{errStyle.Render(err.Error())}
	}
	res, err := m.resolver.Ask(prop)
	if err != nil {
		return []string{errStyle.Render(err.Error())}
	}
	return []string{renderAnswer(res)}
}

func renderAnswer(res assume.Ternary) string {
	switch res {
	case assume.True:
		return trueStyle.Render("true")
	case assume.False:
		return falseStyle.Render("false")
	}
	return unknownStyle.Render("unknown")
}

func (m model) command(line string) []string {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case ":assume":
		prop, err := parser.ParseProp(rest, m.resolver.Registry())
		if err != nil {
			return []string{errStyle.Render(err.Error())}
		}
		m.resolver.Context().Add(prop)
		return []string{noteStyle.Render("assuming " + prop.String())}

	case ":forget":
		prop, err := parser.ParseProp(rest, m.resolver.Registry())
		if err != nil {
			return []string{errStyle.Render(err.Error())}
		}
		if !m.resolver.Context().Remove(prop) {
			return []string{errStyle.Render("not assumed: " + prop.String())}
		}
		return []string{noteStyle.Render("forgot " + prop.String())}

	case ":global":
		snapshot := m.resolver.Context().Snapshot()
		if len(snapshot) == 0 {
			return []string{noteStyle.Render("no background assumptions")}
		}
		out := make([]string, len(snapshot))
		for i, p := range snapshot {
			out[i] = noteStyle.Render("  " + p.String())
		}
		return out

	case ":clear":
		m.resolver.Context().Clear()
		return []string{noteStyle.Render("background assumptions cleared")}

	case ":facts":
		return m.facts(rest)
	}
	return []string{errStyle.Render("unknown command " + cmd)}
}

func (m model) facts(key string) []string {
	ent, ok := m.resolver.Knowledge().Closure[key]
	if !ok {
		return []string{errStyle.Render(fmt.Sprintf("no closure row for %q", key))}
	}
	implies := names(ent.Implies, key)
	excludes := names(ent.Excludes, "")
	out := []string{noteStyle.Render(key + ":")}
	if len(implies) > 0 {
		out = append(out, noteStyle.Render("  implies  "+strings.Join(implies, ", ")))
	}
	if len(excludes) > 0 {
		out = append(out, noteStyle.Render("  excludes "+strings.Join(excludes, ", ")))
	}
	if len(implies) == 0 && len(excludes) == 0 {
		out = append(out, noteStyle.Render("  only itself"))
	}
	return out
}

func names(set map[string]bool, self string) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		if name == self {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
