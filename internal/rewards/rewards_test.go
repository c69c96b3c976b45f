package rewards

import (
	"reflect"
	"testing"
	"time"
)

func TestPracticePoints(t *testing.T) {
	tests := []struct {
		name string
		s    Session
		d    Difficulty
		want int
	}{
		{"no answers", Session{Total: 10, TimeTaken: time.Minute}, DifficultyEasy, 0},
		{"slow and sloppy", Session{Total: 10, Correct: 5, Accuracy: 50, TimeTaken: time.Minute}, DifficultyEasy, 50},
		// 80 base + 8*3 speed + 10*3 accuracy
		{"medium pace", Session{Total: 10, Correct: 8, Accuracy: 80, TimeTaken: 40 * time.Second}, DifficultyEasy, 134},
		// (100 + 50 + 50) * 1.5
		{"fast and perfect", Session{Total: 10, Correct: 10, Accuracy: 100, TimeTaken: 15 * time.Second}, DifficultyMedium, 300},
		// (70 + 0 + 20) * 2
		{"hard seventy", Session{Total: 10, Correct: 7, Accuracy: 70, TimeTaken: time.Minute}, DifficultyHard, 180},
		{"unknown difficulty", Session{Total: 1, Correct: 1, Accuracy: 100, TimeTaken: 10 * time.Second}, Difficulty("insane"), 15},
		{"zero questions", Session{}, DifficultyHard, 0},
	}

	for _, tt := range tests {
		got := PracticePoints(tt.s, tt.d)
		if got != tt.want {
			t.Errorf("%s: PracticePoints = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestAttemptPoints(t *testing.T) {
	if got := AttemptPoints(7); got != 70 {
		t.Errorf("AttemptPoints(7) = %d, want 70", got)
	}
}

func TestEvaluateBadges(t *testing.T) {
	tests := []struct {
		name   string
		s      Session
		streak int
		want   []Badge
	}{
		{"nothing", Session{Total: 10, Correct: 5, Accuracy: 50, TimeTaken: time.Minute}, 1, nil},
		{"accuracy king", Session{Total: 20, Correct: 19, Accuracy: 95, TimeTaken: time.Minute}, 1, []Badge{BadgeAccuracyKing}},
		{"speed star", Session{Total: 10, Correct: 5, Accuracy: 50, TimeTaken: 19 * time.Second}, 1, []Badge{BadgeSpeedStar}},
		{"too few for speed", Session{Total: 9, Correct: 4, Accuracy: 44, TimeTaken: time.Second}, 1, nil},
		{"perfect", Session{Total: 5, Correct: 5, Accuracy: 100, TimeTaken: time.Minute}, 1, []Badge{BadgeAccuracyKing, BadgePerfectScore}},
		{"perfect too short", Session{Total: 4, Correct: 4, Accuracy: 100, TimeTaken: time.Minute}, 1, []Badge{BadgeAccuracyKing}},
		{"week streak", Session{Total: 10, Accuracy: 0, TimeTaken: time.Minute}, 7, []Badge{BadgeStreak7}},
		{"month streak", Session{Total: 10, Accuracy: 0, TimeTaken: time.Minute}, 30, []Badge{BadgeStreak7, BadgeStreak30}},
	}

	for _, tt := range tests {
		got := EvaluateBadges(tt.s, tt.streak)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: EvaluateBadges = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNextStreak(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2026, 3, d, h, 0, 0, 0, time.UTC) }

	tests := []struct {
		name        string
		in          Streak
		now         time.Time
		wantCurrent int
		wantLongest int
	}{
		{"first activity", Streak{}, day(2, 9), 1, 1},
		{"same day", Streak{Current: 3, Longest: 5, LastActive: day(2, 8)}, day(2, 23), 3, 5},
		{"next day", Streak{Current: 3, Longest: 3, LastActive: day(2, 23)}, day(3, 0), 4, 4},
		{"next day below longest", Streak{Current: 2, Longest: 9, LastActive: day(2, 9)}, day(3, 9), 3, 9},
		{"gap resets", Streak{Current: 6, Longest: 6, LastActive: day(2, 9)}, day(4, 9), 1, 6},
	}

	for _, tt := range tests {
		got := NextStreak(tt.in, tt.now)
		if got.Current != tt.wantCurrent || got.Longest != tt.wantLongest {
			t.Errorf("%s: NextStreak = %d/%d, want %d/%d", tt.name, got.Current, got.Longest, tt.wantCurrent, tt.wantLongest)
		}
		if !got.LastActive.Equal(tt.now) {
			t.Errorf("%s: LastActive = %v, want %v", tt.name, got.LastActive, tt.now)
		}
	}
}

func TestWeekStart(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)

	tests := []time.Time{
		monday,
		time.Date(2026, 3, 4, 15, 30, 0, 0, loc),
		time.Date(2026, 3, 8, 23, 59, 59, 0, loc), // Sunday
	}
	for _, in := range tests {
		if got := WeekStart(in); !got.Equal(monday) {
			t.Errorf("WeekStart(%v) = %v, want %v", in, got, monday)
		}
	}

	next := time.Date(2026, 3, 9, 0, 0, 1, 0, loc)
	if got := WeekStart(next); !got.Equal(monday.AddDate(0, 0, 7)) {
		t.Errorf("WeekStart(%v) = %v, want following Monday", next, got)
	}
}

func TestRank(t *testing.T) {
	got := Rank(map[string]int{"ravi": 40, "asha": 90, "bela": 40, "dev": 10})
	want := []Entry{
		{Rank: 1, Player: "asha", Points: 90},
		{Rank: 2, Player: "bela", Points: 40},
		{Rank: 3, Player: "ravi", Points: 40},
		{Rank: 4, Player: "dev", Points: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank = %v, want %v", got, want)
	}

	if got := Rank(nil); len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty", got)
	}
}

func TestBadgeDisplayName(t *testing.T) {
	for _, b := range AllBadges() {
		if b.DisplayName() == string(b) {
			t.Errorf("badge %q has no display name", b)
		}
	}
}

func TestDifficultyFor(t *testing.T) {
	tests := map[string]Difficulty{
		"Junior":        DifficultyEasy,
		"AB-1":          DifficultyEasy,
		"AB-3":          DifficultyEasy,
		"AB-4":          DifficultyMedium,
		"AB-7":          DifficultyMedium,
		"Vedic-Level-2": DifficultyMedium,
		"AB-8":          DifficultyHard,
		"AB-10":         DifficultyHard,
		"Advanced":      DifficultyHard,
		"Vedic-Level-4": DifficultyHard,
		"Custom":        DifficultyCustom,
		"AB-x":          DifficultyCustom,
		"":              DifficultyCustom,
	}
	for level, want := range tests {
		if got := DifficultyFor(level); got != want {
			t.Errorf("DifficultyFor(%q) = %s, want %s", level, got, want)
		}
	}
}
