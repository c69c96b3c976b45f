package api

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/abhisek/talenthub/internal/paper"
)

// StartAttemptRequest opens an attempt on a previewed paper.
type StartAttemptRequest struct {
	PaperTitle      string                 `json:"paper_title"`
	PaperLevel      paper.Level            `json:"paper_level"`
	PaperConfig     paper.Config           `json:"paper_config"`
	GeneratedBlocks []paper.GeneratedBlock `json:"generated_blocks"`
	Seed            int64                  `json:"seed"`
}

// NewStartAttemptRequest builds the request for a previewed paper.
func NewStartAttemptRequest(cfg paper.Config, preview paper.PreviewResponse) StartAttemptRequest {
	cfg = paper.ResolveForSubmit(cfg)
	return StartAttemptRequest{
		PaperTitle:      cfg.Title,
		PaperLevel:      cfg.Level,
		PaperConfig:     cfg,
		GeneratedBlocks: preview.Blocks,
		Seed:            preview.Seed,
	}
}

// AttemptRecord is the service's handle on a started attempt.
type AttemptRecord struct {
	ID        int64  `json:"id"`
	StartedAt string `json:"started_at"`
}

// SubmitRequest carries the answers of an attempt.
type SubmitRequest struct {
	Answers   map[string]float64 `json:"answers"`
	TimeTaken int                `json:"time_taken"`
}

// NewSubmitRequest keys answers by question id and rounds the elapsed
// time to whole seconds.
func NewSubmitRequest(answers map[int]float64, elapsed time.Duration) SubmitRequest {
	out := make(map[string]float64, len(answers))
	for id, v := range answers {
		out[strconv.Itoa(id)] = v
	}
	return SubmitRequest{Answers: out, TimeTaken: int(math.Round(elapsed.Seconds()))}
}

// AttemptResult is the service's verdict on a submitted attempt.
type AttemptResult struct {
	ID             int64   `json:"id"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	WrongAnswers   int     `json:"wrong_answers"`
	Accuracy       float64 `json:"accuracy"`
	Score          int     `json:"score"`
	PointsEarned   int     `json:"points_earned"`
	TimeTaken      *int    `json:"time_taken"`
}

// StartAttempt registers an attempt with the service.
func (c *Client) StartAttempt(ctx context.Context, req StartAttemptRequest) (AttemptRecord, error) {
	var out AttemptRecord
	if err := c.call(ctx, http.MethodPost, "/paper-attempts", req, c.cfg.Timeout, schemaAttempt, &out); err != nil {
		return AttemptRecord{}, err
	}
	return out, nil
}

// SubmitAttempt sends the answers of attempt id for scoring.
func (c *Client) SubmitAttempt(ctx context.Context, id int64, req SubmitRequest) (AttemptResult, error) {
	var out AttemptResult
	path := fmt.Sprintf("/paper-attempts/%d/submit", id)
	if err := c.call(ctx, http.MethodPost, path, req, c.cfg.Timeout, schemaResult, &out); err != nil {
		return AttemptResult{}, err
	}
	return out, nil
}
