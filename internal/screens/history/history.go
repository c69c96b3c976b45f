// Package history lists past attempts alongside the player's totals,
// badges and the weekly leaderboard.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/attempt"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/rewards"
	"github.com/abhisek/talenthub/internal/router"
	"github.com/abhisek/talenthub/internal/screen"
	"github.com/abhisek/talenthub/internal/screens"
	"github.com/abhisek/talenthub/internal/screens/builder"
	"github.com/abhisek/talenthub/internal/store"
	"github.com/abhisek/talenthub/internal/ui/layout"
	"github.com/abhisek/talenthub/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Stats    store.AttemptStats
	Badges   []rewards.Badge
	Board    []rewards.Entry
	Err      error
}

// HistoryScreen displays past attempts.
type HistoryScreen struct {
	deps *screens.Deps

	attempts []store.AttemptRecord
	stats    store.AttemptStats
	badges   []rewards.Badge
	board    []rewards.Entry

	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
	status   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps *screens.Deps) *HistoryScreen {
	return &HistoryScreen{deps: deps, expanded: make(map[int]bool)}
}

func (s *HistoryScreen) Init() tea.Cmd {
	svc, player := s.deps.Rewards, s.deps.Player
	if svc == nil {
		s.errMsg = "History needs a local journal"
		return nil
	}
	return screen.Guard("history", func() tea.Msg {
		ctx := context.Background()
		var msg historyLoadedMsg
		if msg.Attempts, msg.Err = svc.History(ctx, player, pageSize); msg.Err != nil {
			return msg
		}
		if msg.Stats, msg.Err = svc.Stats(ctx, player); msg.Err != nil {
			return msg
		}
		if msg.Badges, msg.Err = svc.Badges(ctx, player); msg.Err != nil {
			return msg
		}
		msg.Board, msg.Err = svc.Leaderboard(ctx)
		return msg
	})
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "P", Description: "Open paper"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.deps.Logger().Warn("load history failed", zap.Error(msg.Err))
			return s, nil
		}
		s.attempts = msg.Attempts
		s.stats = msg.Stats
		s.badges = msg.Badges
		s.board = msg.Board
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "p", "P":
			return s, s.reopen()
		}
	}
	return s, nil
}

// reopen loads the selected attempt's paper into the builder.
func (s *HistoryScreen) reopen() tea.Cmd {
	if s.selected >= len(s.attempts) {
		return nil
	}
	rec := s.attempts[s.selected]
	cfg, err := paper.Decode([]byte(rec.PaperConfig))
	if err != nil || rec.PaperConfig == "" {
		s.status = "The paper for this attempt was not saved"
		return nil
	}
	next := builder.New(s.deps, cfg)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return screens.RenderError(width, "Error: "+s.errMsg)
	}
	if !s.loaded {
		return screens.RenderLoading(width, "Loading history")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderTotals(width))
	b.WriteString("\n\n")

	if len(s.attempts) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No attempts yet. Build a paper and give it a go!"))
		return b.String()
	}

	for i, rec := range s.attempts {
		prefix := "  "
		style := theme.Body
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %-24s %3d/%-3d %4.0f%%  %s  +%d",
			prefix, rec.CompletedAt.Format("Jan 02 15:04"), truncate(rec.PaperTitle, 24),
			rec.Correct, rec.Total, rec.Accuracy, attempt.FormatElapsed(rec.TimeTaken), rec.Points)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(details(rec))))
			b.WriteString("\n")
		}
	}

	if len(s.board) > 0 {
		b.WriteString("\n")
		b.WriteString(s.renderBoard(width))
	}
	if s.status != "" {
		b.WriteString("\n" + screens.Centered(width, theme.Hint, s.status))
	}
	return b.String()
}

func (s *HistoryScreen) renderTotals(width int) string {
	st := s.stats
	line := fmt.Sprintf("%d attempts · %d/%d correct · %.0f%% avg · best %d · %d pts",
		st.Attempts, st.Correct, st.Questions, st.AvgAccuracy, st.BestScore, st.Points)
	out := screens.Centered(width, theme.Subtitle, line)

	if len(s.badges) > 0 {
		names := make([]string, 0, len(s.badges))
		for _, bd := range s.badges {
			names = append(names, bd.Icon()+" "+bd.DisplayName())
		}
		out += "\n" + screens.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent), strings.Join(names, "   "))
	}
	return out
}

func (s *HistoryScreen) renderBoard(width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("This week"))
	for i, e := range s.board {
		if i == 5 {
			break
		}
		line := fmt.Sprintf("%d. %-16s %5d", e.Rank, truncate(e.Player, 16), e.Points)
		style := theme.Body
		if e.Player == s.deps.Player {
			style = theme.Selected
		}
		b.WriteString("\n" + style.Render(line))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Render(b.String()))
}

func details(rec store.AttemptRecord) string {
	synced := "offline"
	if rec.RemoteID != nil {
		synced = fmt.Sprintf("synced #%d", *rec.RemoteID)
	}
	return fmt.Sprintf("    %s · seed %d · %d wrong · score %d · %s",
		rec.PaperLevel, rec.Seed, rec.Wrong, rec.Score, synced)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
