package home

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talenthub/internal/store"
	"github.com/abhisek/talenthub/internal/ui/theme"
)

// Mood selects which mascot art to display.
type Mood int

const (
	MoodIdle   Mood = iota // no practice yet today
	MoodActive             // practiced today
	MoodOnFire             // a streak of a week or more
)

const abacusIdle = `╔═══════╗
║─●─●───║
║───●─●─║
║ -_-   ║
╚═══════╝`

const abacusActive = `╔═══════╗
║●●───●─║
║─●●●───║
║ ^_^   ║
╚═══════╝`

const abacusOnFire = `╔═══════╗
║●●●●●●●║
║●●●●●●●║
║ ★_★  !║
╚═══════╝`

// MoodFor picks the mascot mood for a profile as of now.
func MoodFor(p store.Profile, now time.Time) Mood {
	switch {
	case p.CurrentStreak >= 7:
		return MoodOnFire
	case p.LastActive.IsZero():
		return MoodIdle
	}
	y, m, d := p.LastActive.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	if y == ny && m == nm && d == nd {
		return MoodActive
	}
	return MoodIdle
}

// RenderMascot returns the mascot art for the given mood.
func RenderMascot(mood Mood) string {
	art, fg := abacusIdle, theme.TextDim
	switch mood {
	case MoodActive:
		art, fg = abacusActive, theme.Primary
	case MoodOnFire:
		art, fg = abacusOnFire, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
