// Package home is the landing screen.
package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/router"
	"github.com/abhisek/talenthub/internal/screen"
	"github.com/abhisek/talenthub/internal/screens"
	"github.com/abhisek/talenthub/internal/screens/builder"
	"github.com/abhisek/talenthub/internal/screens/history"
	"github.com/abhisek/talenthub/internal/store"
	"github.com/abhisek/talenthub/internal/ui/components"
	"github.com/abhisek/talenthub/internal/ui/layout"
	"github.com/abhisek/talenthub/internal/ui/theme"
)

const bannerFull = `▀█▀ ▄▀█ █   █▀▀ █▄ █ ▀█▀   █ █ █ █ █▄▄
 █  █▀█ █▄▄ ██▄ █ ▀█  █    █▀█ █▄█ █▄█`

const bannerCompact = "T A L E N T · H U B"

// HomeScreen is the main menu.
type HomeScreen struct {
	deps    *screens.Deps
	menu    components.Menu
	profile store.Profile
	loaded  bool
	now     func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps *screens.Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	items := []components.MenuItem{
		{Label: "New custom paper", Action: push(func() screen.Screen {
			return builder.New(deps, paper.New(paper.LevelCustom))
		})},
		{Label: "New level paper", Action: push(func() screen.Screen {
			return builder.New(deps, paper.New(paper.LevelJunior))
		})},
		{Label: "History", Disabled: deps.Rewards == nil, Action: push(func() screen.Screen {
			return history.New(deps)
		})},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
		now:  time.Now,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.deps.LoadProfile()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(screens.ProfileMsg); ok {
		h.profile = msg.Profile
		h.loaded = true
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)
	cw := min(max(width-6, 20), 60)

	var sections []string
	banner := bannerFull
	if compact {
		banner = bannerCompact
	}
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner)))

	profile := h.renderProfile(cw - 14)
	if !compact {
		mascot := RenderMascot(MoodFor(h.profile, h.now()))
		profile = lipgloss.JoinHorizontal(lipgloss.Center, mascot, "  ", profile)
	}
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, profile))
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, theme.Card.Render(h.menu.View())))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) renderProfile(width int) string {
	if h.deps.Rewards == nil {
		return theme.Hint.Render("Playing offline · progress is not saved")
	}
	if !h.loaded {
		return theme.Hint.Render("Loading profile...")
	}
	p := h.profile
	if p.TotalPoints == 0 && p.LastActive.IsZero() {
		return theme.Body.Render(fmt.Sprintf("Welcome, %s!", h.deps.Player)) + "\n" +
			theme.Hint.Render("Build a paper to earn your first points.")
	}

	pts := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	lines := []string{
		theme.Body.Render(h.deps.Player),
		pts.Render(fmt.Sprintf("● %d pts", p.TotalPoints)),
		theme.Subtitle.Render(fmt.Sprintf("🔥 %d day streak · best %d", p.CurrentStreak, p.LongestStreak)),
	}
	return lipgloss.NewStyle().MaxWidth(max(width, 20)).Render(strings.Join(lines, "\n"))
}
