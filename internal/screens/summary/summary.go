// Package summary shows the result of a submitted paper attempt.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talenthub/internal/attempt"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/render"
	"github.com/abhisek/talenthub/internal/rewards"
	"github.com/abhisek/talenthub/internal/router"
	"github.com/abhisek/talenthub/internal/screen"
	"github.com/abhisek/talenthub/internal/ui/components"
	"github.com/abhisek/talenthub/internal/ui/layout"
	"github.com/abhisek/talenthub/internal/ui/theme"
)

// Outcome is everything the summary shows about an attempt.
type Outcome struct {
	PaperTitle string
	Questions  []paper.Question
	Result     attempt.Result
	Elapsed    time.Duration

	// Award is nil when the attempt was not journaled.
	Award *rewards.Award

	// Synced reports whether the service accepted the submission.
	Synced bool

	// Warning is a non-fatal problem to show, such as a failed sync.
	Warning string
}

// SummaryScreen displays the scored attempt and a review of the misses.
type SummaryScreen struct {
	out    Outcome
	render render.Options
	offset int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen.
func New(out Outcome, opts render.Options) *SummaryScreen {
	opts.ShowAnswer = false
	return &SummaryScreen{out: out, render: opts}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Attempt Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll review"},
		{Key: "Enter", Description: "Back to paper"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset = min(s.offset+1, max(len(s.misses())-1, 0))
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.out.Result
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title, headline(r)))
	b.WriteString("\n")
	b.WriteString(center(theme.Subtitle, fmt.Sprintf("%s · %s", s.out.PaperTitle, attempt.FormatElapsed(s.out.Elapsed))))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body, fmt.Sprintf("Questions: %d      Correct: %d      Wrong: %d      Score: %d",
		r.Total, r.Correct, r.Wrong, r.Score)))
	b.WriteString("\n")
	bar := components.NewProgressBar("Accuracy", r.Correct, r.Total, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if a := s.out.Award; a != nil {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
			fmt.Sprintf("+%d points   ·   %d total   ·   🔥 %d day streak", a.Points, a.Profile.TotalPoints, a.Profile.CurrentStreak)))
		b.WriteString("\n")
		for _, badge := range a.NewBadges {
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary),
				fmt.Sprintf("%s New badge: %s", badge.Icon(), badge.DisplayName())))
			b.WriteString("\n")
		}
	}
	if s.out.Warning != "" {
		b.WriteString(center(theme.ErrorText, s.out.Warning))
		b.WriteString("\n")
	} else if s.out.Synced {
		b.WriteString(center(theme.Correct, "Saved to your account"))
		b.WriteString("\n")
	}

	misses := s.misses()
	if len(misses) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(center(theme.Subtitle, "Review"))
	b.WriteString("\n")
	b.WriteString(center(theme.Rule, strings.Repeat("─", min(width-8, 60))))
	b.WriteString("\n")

	room := max(height-lipgloss.Height(b.String())-1, 1)
	end := min(s.offset+room, len(misses))
	for _, line := range misses[s.offset:end] {
		b.WriteString(center(theme.Incorrect, line))
		b.WriteString("\n")
	}
	return b.String()
}

func headline(r attempt.Result) string {
	switch {
	case r.Total > 0 && r.Correct == r.Total:
		return "Perfect paper!"
	case r.Accuracy >= 80:
		return "Great work!"
	default:
		return "Paper complete"
	}
}

// misses lists the wrong or unanswered questions as review lines.
func (s *SummaryScreen) misses() []string {
	byID := make(map[int]paper.Question, len(s.out.Questions))
	for _, q := range s.out.Questions {
		byID[q.ID] = q
	}
	var out []string
	for i, o := range s.out.Result.PerQuestion {
		if o.Correct {
			continue
		}
		l := render.Render(byID[o.QuestionID], s.render)
		given := "(blank)"
		if o.Answered {
			given = render.FormatNumber(o.Given)
		}
		out = append(out, fmt.Sprintf("%2d. %s   you: %s   answer: %s", i+1, l.Inline(), given, l.Answer))
	}
	return out
}
