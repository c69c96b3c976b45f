package attempt

import (
	"fmt"
	"time"
)

// Sheet holds the answers typed so far, keyed by question id. Updates
// return a new sheet and leave the receiver untouched.
type Sheet struct {
	raw map[int]string
}

// Set records raw as the answer to question id. A blank answer removes
// the entry.
func (s Sheet) Set(id int, raw string) Sheet {
	out := make(map[int]string, len(s.raw)+1)
	for k, v := range s.raw {
		out[k] = v
	}
	if raw == "" {
		delete(out, id)
	} else {
		out[id] = raw
	}
	return Sheet{raw: out}
}

// Raw returns the text typed for question id.
func (s Sheet) Raw(id int) string {
	return s.raw[id]
}

// Answers returns the parsed answers. Entries that do not parse are left
// out and so count as unanswered.
func (s Sheet) Answers() map[int]float64 {
	out := make(map[int]float64, len(s.raw))
	for id, raw := range s.raw {
		if v, ok := ParseAnswer(raw); ok {
			out[id] = v
		}
	}
	return out
}

// Answered returns how many entries parse as numbers.
func (s Sheet) Answered() int {
	return len(s.Answers())
}

// Timer measures the time spent on an attempt.
type Timer struct {
	start   time.Time
	stopped time.Time
	now     func() time.Time
}

// StartTimer starts a timer at the current time.
func StartTimer() *Timer {
	return startTimerWith(time.Now)
}

func startTimerWith(now func() time.Time) *Timer {
	return &Timer{start: now(), now: now}
}

// Elapsed returns the time since start, frozen once the timer stops.
func (t *Timer) Elapsed() time.Duration {
	if !t.stopped.IsZero() {
		return t.stopped.Sub(t.start)
	}
	return t.now().Sub(t.start)
}

// Stop freezes the timer. Later calls have no effect.
func (t *Timer) Stop() time.Duration {
	if t.stopped.IsZero() {
		t.stopped = t.now()
	}
	return t.Elapsed()
}

// Running reports whether the timer still ticks.
func (t *Timer) Running() bool {
	return t.stopped.IsZero()
}

func (t *Timer) String() string {
	return FormatElapsed(t.Elapsed())
}

// FormatElapsed renders d as mm:ss. Minutes keep counting past an hour.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
