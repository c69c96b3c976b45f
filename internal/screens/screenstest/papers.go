// Package screenstest provides fakes for screen tests.
package screenstest

import (
	"context"
	"sync"

	"github.com/abhisek/talenthub/internal/api"
	"github.com/abhisek/talenthub/internal/blocks"
	"github.com/abhisek/talenthub/internal/paper"
)

// Papers is an in-memory screens.PaperService. Zero values answer every
// call successfully with empty results.
type Papers struct {
	mu sync.Mutex

	PreviewResp paper.PreviewResponse
	PreviewErr  error
	PDF         []byte
	PDFErr      error
	PresetList  []blocks.Block
	PresetErr   error
	AttemptID   int64
	StartErr    error
	Result      api.AttemptResult
	SubmitErr   error

	Previewed []paper.Config
	PDFs      []paper.PDFRequest
	Levels    []paper.Level
	Started   []api.StartAttemptRequest
	Submitted []api.SubmitRequest
	SubmitIDs []int64
}

func (p *Papers) Preview(_ context.Context, cfg paper.Config) (paper.PreviewResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Previewed = append(p.Previewed, cfg)
	return p.PreviewResp, p.PreviewErr
}

func (p *Papers) GeneratePDF(_ context.Context, req paper.PDFRequest) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.PDFs = append(p.PDFs, req)
	return p.PDF, p.PDFErr
}

func (p *Papers) Presets(_ context.Context, level paper.Level) ([]blocks.Block, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Levels = append(p.Levels, level)
	return p.PresetList, p.PresetErr
}

func (p *Papers) StartAttempt(_ context.Context, req api.StartAttemptRequest) (api.AttemptRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Started = append(p.Started, req)
	if p.StartErr != nil {
		return api.AttemptRecord{}, p.StartErr
	}
	return api.AttemptRecord{ID: p.AttemptID}, nil
}

func (p *Papers) SubmitAttempt(_ context.Context, id int64, req api.SubmitRequest) (api.AttemptResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.SubmitIDs = append(p.SubmitIDs, id)
	p.Submitted = append(p.Submitted, req)
	return p.Result, p.SubmitErr
}

// Questions builds a preview of simple additions a+1 for each a.
func Questions(as ...float64) paper.PreviewResponse {
	qs := make([]paper.Question, len(as))
	for i, a := range as {
		qs[i] = paper.Question{ID: i + 1, Operands: []float64{a, 1}, Operator: "+", Answer: a + 1}
	}
	return paper.PreviewResponse{
		Blocks: []paper.GeneratedBlock{{Config: blocks.New(blocks.Addition), Questions: qs}},
		Seed:   7,
	}
}
