package rewards

import (
	"sort"
	"time"
)

// Entry is one row of the weekly leaderboard.
type Entry struct {
	Rank   int
	Player string
	Points int
}

// WeekStart returns Monday 00:00 of t's week in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // days since Monday
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// Rank orders players by points, highest first, breaking ties by name.
func Rank(points map[string]int) []Entry {
	out := make([]Entry, 0, len(points))
	for p, pts := range points {
		out = append(out, Entry{Player: p, Points: pts})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Player < out[j].Player
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
