package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/nbkernel/pkg/errors"
	"github.com/matzehuels/nbkernel/pkg/kernel"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// languagePicker - Interactive language selection
// =============================================================================

// languagePicker is the bubbletea model behind --interactive.
type languagePicker struct {
	langs    []kernel.Language
	cursor   int
	selected kernel.Language
	quit     bool
}

func newLanguagePicker() languagePicker {
	return languagePicker{langs: kernel.Languages()}
}

func (m languagePicker) Init() tea.Cmd {
	return nil
}

func (m languagePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.quit = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.langs)-1 {
			m.cursor++
		}
	case "enter":
		m.selected = m.langs[m.cursor]
		return m, tea.Quit
	}
	return m, nil
}

func (m languagePicker) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Kernel Language"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, lang := range m.langs {
		spec, _, _ := kernel.Lookup(lang)

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-8s %s", cursor, lang, styleDim.Render(spec.DisplayName))

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pickLanguage runs the picker on the terminal. It fails with
// INVALID_INPUT when stdin or stdout is not a terminal, and returns
// context.Canceled when the user quits without choosing.
func (c *CLI) pickLanguage(ctx context.Context) (kernel.Language, error) {
	if !c.interactive() {
		return "", errors.New(errors.ErrCodeInvalidInput, "--interactive needs a terminal; pass --lang instead")
	}

	p := tea.NewProgram(newLanguagePicker(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", errors.Wrap(errors.ErrCodeInternal, err, "run language picker")
	}

	fm, ok := finalModel.(languagePicker)
	if !ok || fm.quit || fm.selected == "" {
		return "", context.Canceled
	}
	loggerFromContext(ctx).Debug("Picked language", "lang", fm.selected)
	return fm.selected, nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
