package preview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talenthub/internal/blocks"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/render"
	"github.com/abhisek/talenthub/internal/screens"
	"github.com/abhisek/talenthub/internal/ui/theme"
)

func (s *PreviewScreen) View(width, height int) string {
	if s.errMsg != "" {
		return screens.RenderError(width, s.errMsg+"\n\nPress R to retry or Esc to go back.")
	}
	if !s.loaded {
		return screens.RenderLoading(width, "Generating paper")
	}

	head := s.renderHead(width)
	body := strings.Split(s.renderBody(width), "\n")

	room := max(height-lipgloss.Height(head)-1, 1)
	s.offset = min(s.offset, max(len(body)-room, 0))
	end := min(s.offset+room, len(body))

	return head + "\n" + strings.Join(body[s.offset:end], "\n")
}

func (s *PreviewScreen) renderHead(width int) string {
	cfg := paper.ResolveForSubmit(s.cfg)
	qs := s.resp.Questions()

	left := theme.Title.Render("  " + cfg.Title)
	right := theme.Subtitle.Render(fmt.Sprintf("%s · %d questions · seed %d  ", cfg.Level, len(qs), s.resp.Seed))
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", gap) + right

	status := ""
	switch {
	case s.loading:
		status = theme.Hint.Render("  Regenerating...")
	case s.status != "":
		status = theme.Hint.Render("  " + s.status)
	}
	return line + "\n" + status + "\n" + theme.Rule.Render(strings.Repeat("─", max(width-4, 0)))
}

func (s *PreviewScreen) renderBody(width int) string {
	opts := s.deps.Render
	opts.ShowAnswer = s.showAnswers

	var b strings.Builder
	n := 0
	for i, gb := range s.resp.Blocks {
		title := gb.Config.Title
		if title == "" {
			title = blocks.DeriveTitle(gb.Config)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("  Section %d · %s", i+1, title)))
		b.WriteString("\n\n")

		cells := make([]string, len(gb.Questions))
		cellWidth := 0
		for j, q := range gb.Questions {
			n++
			num := theme.Subtitle.Render(fmt.Sprintf("%d.", n))
			cells[j] = num + "\n" + render.Style(render.Render(q, opts))
			cellWidth = max(cellWidth, lipgloss.Width(cells[j]))
		}
		cellWidth += 4
		b.WriteString(grid(cells, cellWidth, max((width-4)/max(cellWidth, 1), 1)))
		b.WriteString("\n")
	}
	return b.String()
}

// grid lays cells out in rows of cols, each cell padded to width.
func grid(cells []string, width, cols int) string {
	pad := lipgloss.NewStyle().Width(width).PaddingLeft(2)
	var rows []string
	for start := 0; start < len(cells); start += cols {
		end := min(start+cols, len(cells))
		row := make([]string, 0, end-start)
		for _, c := range cells[start:end] {
			row = append(row, pad.Render(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append(rows, "")...)
}
