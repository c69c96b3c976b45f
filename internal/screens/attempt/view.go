package attempt

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	att "github.com/abhisek/talenthub/internal/attempt"
	"github.com/abhisek/talenthub/internal/render"
	"github.com/abhisek/talenthub/internal/screens"
	"github.com/abhisek/talenthub/internal/ui/components"
	"github.com/abhisek/talenthub/internal/ui/theme"
)

func (s *AttemptScreen) View(width, height int) string {
	switch {
	case len(s.questions) == 0:
		return screens.RenderError(width, "This paper has no questions.\n\nPress Esc to go back.")
	case s.submitting:
		return screens.RenderLoading(width, "Scoring your paper")
	case s.confirmQuit:
		return screens.Centered(width, theme.Body,
			"\n\n\nAbandon this attempt?\n\nYour answers will not be saved.\n\n(y/n)")
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.cursor+1, len(s.questions)))
	infoRight := theme.Subtitle.Render(fmt.Sprintf("answered %d   ⏱ %s  ",
		s.answered(), att.FormatElapsed(s.elapsed)))
	gap := max(width-lipgloss.Width(infoLeft)-lipgloss.Width(infoRight), 1)
	b.WriteString(infoLeft + strings.Repeat(" ", gap) + infoRight)
	b.WriteString("\n")
	b.WriteString(theme.Rule.Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	q := s.questions[s.cursor]
	question := render.Style(render.Render(q, s.opts))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, question))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Answered", s.answered(), len(s.questions), min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderStrip(width-8)))

	if s.remoteNote != "" {
		b.WriteString("\n\n")
		b.WriteString(screens.Centered(width, theme.Hint, s.remoteNote))
	}
	return b.String()
}

// answered counts parseable answers, including the one being typed.
func (s *AttemptScreen) answered() int {
	sheet := s.sheet
	if s.cursor < len(s.questions) {
		sheet = sheet.Set(s.questions[s.cursor].ID, strings.TrimSpace(s.input.Value()))
	}
	return sheet.Answered()
}

// renderStrip shows one marker per question around the cursor.
func (s *AttemptScreen) renderStrip(width int) string {
	const cell = 2
	n := len(s.questions)
	visible := max(min(width/cell, n), 1)
	start := min(max(s.cursor-visible/2, 0), n-visible)

	var b strings.Builder
	for i := start; i < start+visible; i++ {
		mark := "○"
		if _, ok := att.ParseAnswer(s.sheet.Raw(s.questions[i].ID)); ok {
			mark = "●"
		}
		style := theme.Subtitle
		if i == s.cursor {
			style = theme.Selected
			mark = "◆"
		}
		b.WriteString(style.Render(mark) + " ")
	}
	return b.String()
}
