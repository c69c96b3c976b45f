package screen

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

type okMsg struct{}

func TestGuardPassesThrough(t *testing.T) {
	cmd := Guard("preview", func() tea.Msg { return okMsg{} })
	if _, ok := cmd().(okMsg); !ok {
		t.Fatal("expected the wrapped message")
	}
}

func TestGuardRecoversPanic(t *testing.T) {
	cmd := Guard("preview", func() tea.Msg { panic("boom") })
	msg, ok := cmd().(PanicMsg)
	if !ok {
		t.Fatal("expected a PanicMsg")
	}
	if msg.Section != "preview" || msg.Err.Error() != "boom" {
		t.Errorf("PanicMsg = %+v", msg)
	}
	if len(msg.Stack) == 0 {
		t.Error("expected a stack trace")
	}
}

func TestGuardNil(t *testing.T) {
	if Guard("x", nil) != nil {
		t.Error("Guard(nil) should be nil")
	}
}
