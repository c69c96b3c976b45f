package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talenthub/internal/ui/theme"
)

// ProgressBar is a horizontal bar with an optional label and percentage.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a bar for done out of total. A zero total renders
// an empty bar.
func NewProgressBar(label string, done, total int, width int) ProgressBar {
	p := ProgressBar{Label: label, ShowPercent: true, Width: width}
	if total > 0 {
		p.Percent = float64(done) / float64(total)
	}
	return p
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var prefix string
	if p.Label != "" {
		prefix = theme.Body.Render(p.Label) + "  "
	}

	suffix := ""
	if p.ShowPercent {
		suffix = theme.Subtitle.Render(fmt.Sprintf("  %3d%%", int(p.Percent*100)))
	}

	barWidth := max(p.Width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	bar := lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return prefix + bar + suffix
}
