// Package attempt scores a paper attempt and tracks the answers and time
// while it is in progress.
package attempt

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/talenthub/internal/paper"
)

const (
	// Tolerance is the absolute difference under which an answer counts.
	Tolerance = 0.01

	// PointsPerCorrect is the reward for each correct answer.
	PointsPerCorrect = 10
)

var (
	answerPattern  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)
	groupedPattern = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?$`)
)

// Outcome is the verdict on one question.
type Outcome struct {
	QuestionID int     `json:"questionId"`
	Expected   float64 `json:"expected"`
	Given      float64 `json:"given"`
	Answered   bool    `json:"answered"`
	Correct    bool    `json:"correct"`
}

// Result summarizes a scored attempt.
type Result struct {
	Total        int       `json:"totalQuestions"`
	Correct      int       `json:"correctAnswers"`
	Wrong        int       `json:"wrongAnswers"`
	Accuracy     float64   `json:"accuracy"`
	Score        int       `json:"score"`
	PointsEarned int       `json:"pointsEarned"`
	PerQuestion  []Outcome `json:"perQuestion"`
}

// IsCorrect reports whether given matches expected within Tolerance.
func IsCorrect(given, expected float64) bool {
	return math.Abs(given-expected) < Tolerance
}

// Score checks answers against questions. Questions without an answer
// count as wrong.
func Score(questions []paper.Question, answers map[int]float64) Result {
	r := Result{Total: len(questions), PerQuestion: make([]Outcome, 0, len(questions))}
	for _, q := range questions {
		o := Outcome{QuestionID: q.ID, Expected: q.Answer}
		o.Given, o.Answered = answers[q.ID]
		o.Correct = o.Answered && IsCorrect(o.Given, q.Answer)
		if o.Correct {
			r.Correct++
		}
		r.PerQuestion = append(r.PerQuestion, o)
	}
	r.Wrong = r.Total - r.Correct
	if r.Total > 0 {
		r.Accuracy = float64(r.Correct) / float64(r.Total) * 100
	}
	r.Score = r.Correct * PointsPerCorrect
	r.PointsEarned = r.Score
	return r
}

// ParseAnswer reads a typed answer. Surrounding space is ignored and a
// leading sign is allowed. Commas are accepted only as thousands
// separators, so "1,5" is rejected rather than read as 15.
func ParseAnswer(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ",") {
		if !groupedPattern.MatchString(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	if !answerPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
