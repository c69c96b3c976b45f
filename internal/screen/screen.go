package screen

import (
	"fmt"
	"runtime/debug"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/talenthub/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackInterceptor is implemented by screens that handle Esc themselves
// instead of letting the shell pop them.
type BackInterceptor interface {
	InterceptsBack() bool
}

// PanicMsg reports a panic recovered from a screen or one of its commands.
type PanicMsg struct {
	Section string
	Err     error
	Stack   []byte
}

// Guard wraps an async command so a panic inside it is delivered as a
// PanicMsg instead of crashing the program.
func Guard(section string, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = PanicMsg{Section: section, Err: fmt.Errorf("%v", r), Stack: debug.Stack()}
			}
		}()
		return cmd()
	}
}
