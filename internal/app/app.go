// Package app is the terminal shell: header, footer, screen stack and the
// error boundary around every screen.
package app

import (
	"fmt"
	"runtime/debug"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/router"
	"github.com/abhisek/talenthub/internal/screen"
	"github.com/abhisek/talenthub/internal/screens"
	"github.com/abhisek/talenthub/internal/screens/fallback"
	"github.com/abhisek/talenthub/internal/store"
	"github.com/abhisek/talenthub/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps    *screens.Deps
	router  *router.Router
	opened  []screen.Screen
	profile store.Profile
	width   int
	height  int
}

// New creates the shell with initial at the bottom of the stack. Screens
// in open are pushed on top of it when the program starts.
func New(deps *screens.Deps, initial screen.Screen, open ...screen.Screen) AppModel {
	return AppModel{
		deps:   deps,
		router: router.New(initial),
		opened: open,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{screen.Guard("init", m.router.Active().Init())}
	for _, s := range m.opened {
		cmds = append(cmds, screen.Guard("init", m.router.Push(s)))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.crash(screen.PanicMsg{Section: "update", Err: fmt.Errorf("%v", r), Stack: debug.Stack()})
			model, cmd = m, nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.PanicMsg:
		m.crash(msg)
		return m, nil

	case screens.ProfileMsg:
		m.profile = msg.Profile

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !interceptsBack(m.router.Active()) {
				return m, m.router.Pop()
			}
		}
	}

	return m, m.router.Update(msg)
}

// crash logs a recovered panic and puts the fallback screen in place of
// the active one.
func (m AppModel) crash(p screen.PanicMsg) {
	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}
	m.deps.Logger().Error("screen panic",
		zap.String("screen", title),
		zap.String("section", p.Section),
		zap.Error(p.Err),
		zap.ByteString("stack", p.Stack),
	)
	m.router.Replace(fallback.New(title, p))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the frame. A panic while rendering the active screen swaps
// in the fallback screen and draws that instead.
func (m AppModel) render() (out string) {
	defer func() {
		if r := recover(); r != nil {
			m.crash(screen.PanicMsg{Section: "view", Err: fmt.Errorf("%v", r), Stack: debug.Stack()})
			out = m.frame()
		}
	}()
	return m.frame()
}

func (m AppModel) frame() string {
	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.profile.TotalPoints, m.profile.CurrentStreak, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func interceptsBack(s screen.Screen) bool {
	bi, ok := s.(screen.BackInterceptor)
	return ok && bi.InterceptsBack()
}

// Run starts the Bubble Tea program with initial as the first screen.
func Run(deps *screens.Deps, initial screen.Screen, open ...screen.Screen) error {
	p := tea.NewProgram(New(deps, initial, open...))
	if _, err := p.Run(); err != nil {
		deps.Logger().Error("program exited", zap.Error(err))
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
