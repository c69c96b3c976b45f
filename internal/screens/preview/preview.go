// Package preview shows a generated paper and lets the user export it or
// start an attempt on it.
package preview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/api"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/router"
	"github.com/abhisek/talenthub/internal/screen"
	"github.com/abhisek/talenthub/internal/screens"
	"github.com/abhisek/talenthub/internal/screens/attempt"
	"github.com/abhisek/talenthub/internal/ui/layout"
)

// previewMsg carries a finished preview request.
type previewMsg struct {
	Resp paper.PreviewResponse
	Err  error
}

// exportedMsg reports a written PDF.
type exportedMsg struct {
	Path string
	Err  error
}

// PreviewScreen renders the questions the service generated for a paper.
type PreviewScreen struct {
	deps *screens.Deps
	cfg  paper.Config

	resp        paper.PreviewResponse
	loaded      bool
	loading     bool
	showAnswers bool
	offset      int

	errMsg string
	status string
}

var _ screen.Screen = (*PreviewScreen)(nil)
var _ screen.KeyHintProvider = (*PreviewScreen)(nil)

// New creates a preview of cfg. The paper is requested on Init.
func New(deps *screens.Deps, cfg paper.Config) *PreviewScreen {
	deps.Requests()
	return &PreviewScreen{deps: deps, cfg: cfg}
}

func (s *PreviewScreen) Init() tea.Cmd {
	return s.requestPreview()
}

func (s *PreviewScreen) Title() string {
	return "Preview"
}

func (s *PreviewScreen) KeyHints() []layout.KeyHint {
	if !s.loaded {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	answers := "Show answers"
	if s.showAnswers {
		answers = "Hide answers"
	}
	return []layout.KeyHint{
		{Key: "A", Description: answers},
		{Key: "R", Description: "Regenerate"},
		{Key: "S", Description: "Start attempt"},
		{Key: "P", Description: "Practice"},
		{Key: "E/K", Description: "PDF / answer key"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PreviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case previewMsg:
		if errors.Is(msg.Err, api.ErrSuperseded) {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			s.errMsg = screens.ErrorText(msg.Err)
			s.deps.Logger().Warn("preview failed", zap.Error(msg.Err))
			return s, nil
		}
		s.errMsg = ""
		s.resp = msg.Resp
		s.loaded = true
		s.offset = 0
		return s, nil

	case exportedMsg:
		switch {
		case errors.Is(msg.Err, api.ErrSuperseded):
		case msg.Err != nil:
			s.status = "Export failed: " + screens.ErrorText(msg.Err)
		default:
			s.status = "Saved " + msg.Path
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PreviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "r", "R":
		return s, s.requestPreview()
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if !s.loaded {
		return s, nil
	}

	switch msg.String() {
	case "a", "A":
		s.showAnswers = !s.showAnswers
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset++
	case "pgdown", "space":
		s.offset += 10
	case "pgup":
		s.offset = max(s.offset-10, 0)
	case "s", "S", "p", "P":
		if len(s.resp.Questions()) == 0 {
			s.status = "This paper has no questions to attempt"
			return s, nil
		}
		next := attempt.New(s.deps, s.cfg, s.resp)
		if key := msg.String(); key == "p" || key == "P" {
			next = attempt.NewPractice(s.deps, s.cfg, s.resp)
		}
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	case "e", "E":
		return s, s.export(false)
	case "K":
		return s, s.export(true)
	}
	return s, nil
}

func (s *PreviewScreen) requestPreview() tea.Cmd {
	if s.deps.Papers == nil {
		s.errMsg = "No generation service configured"
		return nil
	}
	s.loading = true
	s.status = ""
	papers, sup := s.deps.Papers, s.deps.Supersede
	cfg := paper.ResolveForSubmit(s.cfg)
	return screen.Guard("preview", func() tea.Msg {
		resp, _, err := api.Run(context.Background(), sup, api.KindPreview, func(ctx context.Context) (paper.PreviewResponse, error) {
			return papers.Preview(ctx, cfg)
		})
		return previewMsg{Resp: resp, Err: err}
	})
}

// export writes the previewed paper, or only its answer key, as a PDF.
// The previewed blocks and seed are sent along so the PDF matches.
func (s *PreviewScreen) export(answerKey bool) tea.Cmd {
	s.status = "Exporting..."
	papers, sup, log := s.deps.Papers, s.deps.Supersede, s.deps.Logger()
	seed := s.resp.Seed
	req := paper.PDFRequest{
		Config:          paper.ResolveForSubmit(s.cfg),
		WithAnswers:     answerKey,
		Seed:            &seed,
		GeneratedBlocks: s.resp.Blocks,
		AnswersOnly:     answerKey,
	}
	path := filepath.Join(s.deps.PDFDir, PDFName(req.Config.Title, answerKey))

	return screen.Guard("pdf", func() tea.Msg {
		data, _, err := api.Run(context.Background(), sup, api.KindPDF, func(ctx context.Context) ([]byte, error) {
			return papers.GeneratePDF(ctx, req)
		})
		if err != nil {
			return exportedMsg{Err: err}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return exportedMsg{Err: fmt.Errorf("write %s: %w", path, err)}
		}
		log.Info("pdf exported", zap.String("path", path), zap.Int("bytes", len(data)))
		return exportedMsg{Path: path}
	})
}

// PDFName derives a file name from a paper title.
func PDFName(title string, answerKey bool) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "paper"
	}
	if answerKey {
		name += "-answers"
	}
	return name + ".pdf"
}
