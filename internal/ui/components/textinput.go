package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talenthub/internal/ui/theme"
)

// answerRunes are the characters accepted by a numeric input besides digits.
const answerRunes = ".,+-"

// TextInput wraps bubbles/textinput with the Talent Hub styling. A numeric
// input only accepts what can form a typed answer: digits, a sign, a
// decimal point and thousands separators.
type TextInput struct {
	Model     textinput.Model
	Numeric   bool
	submitted bool
	valid     bool
}

// NewTextInput creates a focused input. A positive maxWidth limits the
// number of characters.
func NewTextInput(placeholder string, numeric bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	return TextInput{Model: ti, Numeric: numeric}
}

// Init returns the cursor blink command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Accepts reports whether key is a character the input takes.
func (t TextInput) Accepts(key string) bool {
	if !t.Numeric || len(key) != 1 {
		return true
	}
	c := key[0]
	return (c >= '0' && c <= '9') || strings.IndexByte(answerRunes, c) >= 0
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && !t.Accepts(kmsg.String()) {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input with a verdict mark once it has been submitted.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}
