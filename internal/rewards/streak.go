package rewards

import "time"

// Streak is a player's run of consecutive practice days.
type Streak struct {
	Current    int
	Longest    int
	LastActive time.Time
}

// NextStreak returns the streak after activity at now. Days are calendar
// days in now's location.
func NextStreak(s Streak, now time.Time) Streak {
	next := s
	next.LastActive = now

	if s.LastActive.IsZero() {
		next.Current = 1
	} else {
		switch dayDiff(s.LastActive.In(now.Location()), now) {
		case 0:
			if next.Current == 0 {
				next.Current = 1
			}
		case 1:
			next.Current++
		default:
			next.Current = 1
		}
	}
	if next.Current > next.Longest {
		next.Longest = next.Current
	}
	return next
}

func dayDiff(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
