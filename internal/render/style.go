package render

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talenthub/internal/ui/theme"
)

var (
	operandStyle  = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	operatorStyle = theme.Operator
	ruleStyle     = theme.Rule
	answerStyle   = theme.Answer
)

// Style renders l for the terminal. Columns are right-aligned like
// String; text layouts put the answer in a trailing column.
func Style(l Layout) string {
	if !l.Kind.Vertical() {
		text := ""
		if len(l.Lines) > 0 {
			text = operandStyle.Render(l.Lines[0].String())
		}
		if !l.ShowAnswer {
			return text
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, text, "   ", answerStyle.Render(l.Answer))
	}

	width := 0
	for _, ln := range l.Lines {
		width = max(width, lipgloss.Width(ln.String()))
	}
	if l.ShowAnswer {
		width = max(width, lipgloss.Width(l.Answer))
	}

	right := lipgloss.NewStyle().Width(width).Align(lipgloss.Right)
	rows := make([]string, 0, len(l.Lines)+2)
	for _, ln := range l.Lines {
		row := operandStyle.Render(ln.Value)
		if ln.Operator != "" {
			row = operatorStyle.Render(ln.Operator) + " " + row
		}
		rows = append(rows, right.Render(row))
	}
	rows = append(rows, ruleStyle.Render(strings.Repeat("─", width)))
	if l.ShowAnswer {
		rows = append(rows, right.Render(answerStyle.Render(l.Answer)))
	} else {
		rows = append(rows, strings.Repeat(" ", width))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rows...)
}
