// Package attempt is the online attempt screen: the learner answers a
// previewed paper against the clock and submits it for scoring. A practice
// run is scored locally and never reaches the service.
package attempt

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/api"
	att "github.com/abhisek/talenthub/internal/attempt"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/render"
	"github.com/abhisek/talenthub/internal/rewards"
	"github.com/abhisek/talenthub/internal/router"
	"github.com/abhisek/talenthub/internal/screen"
	"github.com/abhisek/talenthub/internal/screens"
	"github.com/abhisek/talenthub/internal/screens/summary"
	"github.com/abhisek/talenthub/internal/store"
	"github.com/abhisek/talenthub/internal/ui/components"
	"github.com/abhisek/talenthub/internal/ui/layout"
)

// AttemptScreen implements screen.Screen for a paper attempt.
type AttemptScreen struct {
	deps      *screens.Deps
	cfg       paper.Config
	preview   paper.PreviewResponse
	questions []paper.Question
	opts      render.Options

	sheet   att.Sheet
	timer   *att.Timer
	elapsed time.Duration
	cursor  int
	input   components.TextInput

	practice    bool
	remoteID    *int64
	remoteNote  string
	confirmQuit bool
	submitting  bool
}

var _ screen.Screen = (*AttemptScreen)(nil)
var _ screen.KeyHintProvider = (*AttemptScreen)(nil)
var _ screen.BackInterceptor = (*AttemptScreen)(nil)

// New creates an attempt on the questions of preview. Answers are always
// hidden while the attempt runs.
func New(deps *screens.Deps, cfg paper.Config, preview paper.PreviewResponse) *AttemptScreen {
	opts := deps.Render
	opts.ShowAnswer = false
	deps.Requests()
	return &AttemptScreen{
		deps:      deps,
		cfg:       paper.ResolveForSubmit(cfg),
		preview:   preview,
		questions: preview.Questions(),
		opts:      opts,
		input:     components.NewTextInput("Type your answer...", true, 16),
	}
}

// NewPractice creates a practice run on the questions of preview. It is
// rewarded with practice points for the level's difficulty.
func NewPractice(deps *screens.Deps, cfg paper.Config, preview paper.PreviewResponse) *AttemptScreen {
	s := New(deps, cfg, preview)
	s.practice = true
	return s
}

func (s *AttemptScreen) Init() tea.Cmd {
	s.timer = att.StartTimer()
	cmds := []tea.Cmd{tickCmd(), s.input.Init()}
	if !s.practice {
		cmds = append(cmds, s.startRemote())
	}
	return tea.Batch(cmds...)
}

func (s *AttemptScreen) Title() string {
	if s.practice {
		return "Practice"
	}
	return "Attempt"
}

func (s *AttemptScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.submitting:
		return nil
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Esc", Description: "Abandon"},
	}
}

// InterceptsBack keeps Esc from dropping a running attempt without asking.
// Esc is ignored while the attempt is being submitted.
func (s *AttemptScreen) InterceptsBack() bool {
	return true
}

func (s *AttemptScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.Err != nil {
			s.remoteNote = "Offline attempt: " + screens.ErrorText(msg.Err)
			s.deps.Logger().Warn("start attempt failed", zap.Error(msg.Err))
			return s, nil
		}
		id := msg.Record.ID
		s.remoteID = &id
		return s, nil

	case timerTickMsg:
		if s.timer == nil || !s.timer.Running() {
			return s, nil
		}
		s.elapsed = s.timer.Elapsed()
		return s, tickCmd()

	case submittedMsg:
		next := summary.New(msg.Outcome, s.opts)
		cmds := []tea.Cmd{func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }}
		if a := msg.Outcome.Award; a != nil {
			profile := a.Profile
			cmds = append(cmds, func() tea.Msg { return screens.ProfileMsg{Profile: profile} })
		}
		return s, tea.Batch(cmds...)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if !s.submitting && !s.confirmQuit {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *AttemptScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.submitting {
		return s, nil
	}

	if s.confirmQuit {
		switch msg.String() {
		case "y", "Y":
			s.stopTimer()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "ctrl+s":
		return s.submit()
	case "enter":
		if s.cursor >= len(s.questions)-1 {
			return s.submit()
		}
		s.move(1)
		return s, nil
	case "down", "tab":
		s.move(1)
		return s, nil
	case "up", "shift+tab":
		s.move(-1)
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// commit stores the input under the current question.
func (s *AttemptScreen) commit() {
	if s.cursor < len(s.questions) {
		s.sheet = s.sheet.Set(s.questions[s.cursor].ID, strings.TrimSpace(s.input.Value()))
	}
}

func (s *AttemptScreen) move(delta int) {
	s.commit()
	s.cursor = min(max(s.cursor+delta, 0), max(len(s.questions)-1, 0))
	if s.cursor < len(s.questions) {
		s.input.SetValue(s.sheet.Raw(s.questions[s.cursor].ID))
	}
}

func (s *AttemptScreen) submit() (screen.Screen, tea.Cmd) {
	if len(s.questions) == 0 {
		return s, nil
	}
	s.commit()
	s.submitting = true
	s.stopTimer()
	result := att.Score(s.questions, s.sheet.Answers())
	return s, screen.Guard("submit", s.finish(result, s.elapsed))
}

func (s *AttemptScreen) startRemote() tea.Cmd {
	if s.deps.Papers == nil || len(s.questions) == 0 {
		return nil
	}
	papers := s.deps.Papers
	req := api.NewStartAttemptRequest(s.cfg, s.preview)
	return screen.Guard("attempt", func() tea.Msg {
		rec, err := papers.StartAttempt(context.Background(), req)
		return startedMsg{Record: rec, Err: err}
	})
}

// finish syncs the answers with the service when the attempt is known
// there, then journals it locally. Neither failure loses the result.
func (s *AttemptScreen) finish(result att.Result, elapsed time.Duration) tea.Cmd {
	d := *s.deps
	remoteID, practice := s.remoteID, s.practice
	answers := s.sheet.Answers()
	cfg, seed := s.cfg, s.preview.Seed
	out := summary.Outcome{
		PaperTitle: cfg.Title,
		Questions:  s.questions,
		Result:     result,
		Elapsed:    elapsed,
	}

	return func() tea.Msg {
		ctx := context.Background()
		log := d.Logger()
		points := result.PointsEarned

		if remoteID != nil && d.Papers != nil {
			res, _, err := api.Run(ctx, d.Supersede, api.KindSubmit, func(ctx context.Context) (api.AttemptResult, error) {
				return d.Papers.SubmitAttempt(ctx, *remoteID, api.NewSubmitRequest(answers, elapsed))
			})
			switch {
			case errors.Is(err, api.ErrSuperseded):
			case err != nil:
				log.Warn("submit attempt failed", zap.Int64("attempt", *remoteID), zap.Error(err))
				out.Warning = "Not synced: " + screens.ErrorText(err)
			default:
				out.Synced = true
				points = res.PointsEarned
			}
		}

		if d.Rewards != nil {
			encoded, err := paper.Encode(cfg)
			if err != nil {
				log.Warn("encode paper failed", zap.String("paper", cfg.Title), zap.Error(err))
			}
			rec := store.AttemptRecord{
				RemoteID:    remoteID,
				Player:      d.Player,
				PaperTitle:  cfg.Title,
				PaperLevel:  string(cfg.Level),
				Seed:        seed,
				Total:       result.Total,
				Correct:     result.Correct,
				Wrong:       result.Wrong,
				Accuracy:    result.Accuracy,
				Score:       result.Score,
				Points:      points,
				TimeTaken:   elapsed,
				PaperConfig: string(encoded),
			}
			var award *rewards.Award
			if practice {
				award, err = d.Rewards.RecordPractice(ctx, rec, rewards.DifficultyFor(string(cfg.Level)))
			} else {
				award, err = d.Rewards.RecordAttempt(ctx, rec)
			}
			if err != nil {
				log.Error("journal attempt failed", zap.Error(err))
				out.Warning = "Could not save this attempt locally"
			} else {
				out.Award = award
			}
		}
		return submittedMsg{Outcome: out}
	}
}

func (s *AttemptScreen) stopTimer() {
	if s.timer != nil {
		s.elapsed = s.timer.Stop()
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
