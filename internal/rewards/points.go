package rewards

import (
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/talenthub/internal/attempt"
)

// Difficulty is the mode a practice session was played in.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyCustom Difficulty = "custom"
)

// Multiplier scales practice points. Unknown modes count as easy.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyMedium:
		return 1.5
	case DifficultyHard:
		return 2.0
	default:
		return 1.0
	}
}

// DifficultyFor maps a paper level to its practice difficulty. Abacus
// levels 1-3 and Junior are easy, 4-7 and the first two Vedic levels are
// medium, and the rest of the graded levels are hard. Custom papers have
// their own mode.
func DifficultyFor(level string) Difficulty {
	switch level {
	case "Junior":
		return DifficultyEasy
	case "Vedic-Level-1", "Vedic-Level-2":
		return DifficultyMedium
	case "Advanced", "Vedic-Level-3", "Vedic-Level-4":
		return DifficultyHard
	}
	if n, ok := strings.CutPrefix(level, "AB-"); ok {
		switch v, err := strconv.Atoi(n); {
		case err != nil:
		case v <= 3:
			return DifficultyEasy
		case v <= 7:
			return DifficultyMedium
		default:
			return DifficultyHard
		}
	}
	return DifficultyCustom
}

// Session summarizes one finished paper or practice session.
type Session struct {
	Total     int
	Correct   int
	Accuracy  float64 // percent, 0-100
	TimeTaken time.Duration
}

// AvgTime returns the mean time spent per question.
func (s Session) AvgTime() time.Duration {
	if s.Total <= 0 {
		return 0
	}
	return s.TimeTaken / time.Duration(s.Total)
}

// AttemptPoints returns the points for a scored paper attempt, the same
// figure the reconciler reports.
func AttemptPoints(correct int) int {
	return correct * attempt.PointsPerCorrect
}

// PracticePoints returns the points for a timed practice session.
//
// Every correct answer is worth 10, plus 5 when the average answer took
// under 2s or 3 when under 5s. Accuracy adds 5, 3 or 2 per question at
// 90, 80 and 70 percent. The sum is scaled by the difficulty multiplier
// and truncated.
func PracticePoints(s Session, d Difficulty) int {
	base := s.Correct * attempt.PointsPerCorrect

	speed := 0
	if s.Total > 0 {
		switch avg := s.AvgTime(); {
		case avg < 2*time.Second:
			speed = s.Correct * 5
		case avg < 5*time.Second:
			speed = s.Correct * 3
		}
	}

	accuracy := 0
	switch {
	case s.Accuracy >= 90:
		accuracy = s.Total * 5
	case s.Accuracy >= 80:
		accuracy = s.Total * 3
	case s.Accuracy >= 70:
		accuracy = s.Total * 2
	}

	return int(float64(base+speed+accuracy) * d.Multiplier())
}

// EvaluateBadges returns the badges a session qualifies for, given the
// player's streak after the session. Whether a badge is already held is
// decided by the caller.
func EvaluateBadges(s Session, streak int) []Badge {
	var out []Badge
	if s.Accuracy >= 95 {
		out = append(out, BadgeAccuracyKing)
	}
	if s.Total >= 10 && s.AvgTime() < 2*time.Second {
		out = append(out, BadgeSpeedStar)
	}
	if s.Total >= 5 && s.Accuracy == 100 {
		out = append(out, BadgePerfectScore)
	}
	if streak >= 7 {
		out = append(out, BadgeStreak7)
	}
	if streak >= 30 {
		out = append(out, BadgeStreak30)
	}
	return out
}
