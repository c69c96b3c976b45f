// Package fallback is the screen shown in place of one that panicked.
package fallback

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talenthub/internal/router"
	"github.com/abhisek/talenthub/internal/screen"
	"github.com/abhisek/talenthub/internal/ui/layout"
	"github.com/abhisek/talenthub/internal/ui/theme"
)

// FallbackScreen reports a recovered panic and offers a way out.
type FallbackScreen struct {
	crashed string
	panic   screen.PanicMsg
}

var _ screen.Screen = (*FallbackScreen)(nil)
var _ screen.KeyHintProvider = (*FallbackScreen)(nil)

// New creates a FallbackScreen for a panic in the screen titled crashed.
func New(crashed string, p screen.PanicMsg) *FallbackScreen {
	return &FallbackScreen{crashed: crashed, panic: p}
}

func (f *FallbackScreen) Init() tea.Cmd {
	return nil
}

func (f *FallbackScreen) Title() string {
	return "Something went wrong"
}

func (f *FallbackScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Back"},
	}
}

func (f *FallbackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return f, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return f, nil
}

func (f *FallbackScreen) View(width, height int) string {
	where := f.crashed
	if f.panic.Section != "" {
		where += " · " + f.panic.Section
	}
	body := theme.ErrorText.Render("The "+where+" screen hit an unexpected error.") + "\n\n" +
		theme.Body.Render(fmt.Sprint(f.panic.Err)) + "\n\n" +
		theme.Hint.Render("Details were written to the log. Your saved papers and history are safe.")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
