package builder

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talenthub/internal/blocks"
	"github.com/abhisek/talenthub/internal/ui/theme"
)

const labelWidth = 46

func (s *BuilderScreen) View(width, height int) string {
	lines, focused := s.formLines()

	var status string
	switch {
	case s.loadingPresets:
		status = theme.Hint.Render("  Loading presets for " + string(s.level) + "...")
	case s.status != "" && s.statusErr:
		status = theme.ErrorText.Render("  " + s.status)
	case s.status != "":
		status = theme.Hint.Render("  " + s.status)
	}

	room := max(height-2, 1)
	start := min(max(focused-room/2, 0), max(len(lines)-room, 0))
	end := min(start+room, len(lines))
	return strings.Join(lines[start:end], "\n") + "\n\n" + status
}

// formLines renders every row of the form and reports the line of the
// focused cell.
func (s *BuilderScreen) formLines() ([]string, int) {
	cells := s.cells()
	var lines []string
	focused := 0
	lastBlock := -1

	for i, c := range cells {
		if c.inBlock() && c.block != lastBlock {
			lastBlock = c.block
			lines = append(lines, "", s.blockHeader(c.block))
		}
		if i == s.focus {
			focused = len(lines)
		}
		lines = append(lines, s.renderCell(c, i == s.focus))
		if c.kind == cellField {
			b, _ := s.ed.Block(c.block)
			if msg := s.ed.Error(b.ID, c.field.Field); msg != "" {
				lines = append(lines, strings.Repeat(" ", labelWidth+4)+theme.ErrorText.Render("↳ "+msg))
			}
		}
	}
	if len(cells) == 2 && !s.loadingPresets {
		lines = append(lines, "", theme.Hint.Render("  No blocks yet. Press Ctrl+N to add one."))
	}
	return lines, focused
}

func (s *BuilderScreen) blockHeader(i int) string {
	b, _ := s.ed.Block(i)
	count := fmt.Sprintf("%d questions", b.Count)
	if b.Count == blocks.Empty {
		count = "? questions"
	}
	return lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Block %d of %d", i+1, s.ed.Len())) +
		theme.Subtitle.Render("  · "+count)
}

func (s *BuilderScreen) renderCell(c cell, focused bool) string {
	var label, value string
	invalid := false

	switch c.kind {
	case cellLevel:
		label, value = "Level", "◀ "+string(s.level)+" ▶"
	case cellPaperTitle:
		label, value = "Paper title", s.title
	case cellType:
		b, _ := s.ed.Block(c.block)
		label, value = "Type", b.Type.DisplayName()
		if len(s.level.TypesFor()) > 0 {
			value = "◀ " + value + " ▶"
		}
	case cellBlockTitle:
		b, _ := s.ed.Block(c.block)
		label, value = "Section title", b.Title
		if value == "" && !focused {
			return s.row(label, theme.Hint.Render(blocks.DeriveTitle(b)), false)
		}
	case cellField:
		b, _ := s.ed.Block(c.block)
		label = c.field.Label
		v, set := b.Get(c.field.Field)
		switch {
		case focused:
			value = s.buf
		case set && v != blocks.Empty:
			value = strconv.Itoa(v)
		case c.field.Optional:
			return s.row(label, theme.Hint.Render("auto"), false)
		}
		invalid = s.ed.Error(b.ID, c.field.Field) != ""
		label += fmt.Sprintf(" (%d-%d)", c.field.Min, c.field.Max)
	}

	if focused && (c.isText() || c.kind == cellField) {
		value += "▏"
	}
	style := theme.Field
	switch {
	case focused:
		style = theme.FieldFocused
	case invalid:
		style = theme.FieldInvalid
	}
	return s.row(label, style.Render(value), focused)
}

func (s *BuilderScreen) row(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = theme.Selected.Render("▸ ")
	}
	pad := max(labelWidth-lipgloss.Width(label), 1)
	return "  " + marker + theme.Body.Render(label) + strings.Repeat(" ", pad) + value
}
