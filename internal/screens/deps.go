// Package screens holds what the TUI screens share: their collaborators
// and a few view helpers. Each screen lives in its own subpackage.
package screens

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/api"
	"github.com/abhisek/talenthub/internal/blocks"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/render"
	"github.com/abhisek/talenthub/internal/rewards"
	"github.com/abhisek/talenthub/internal/screen"
	"github.com/abhisek/talenthub/internal/store"
	"github.com/abhisek/talenthub/internal/ui/theme"
)

// PaperService is the part of the generation service the screens use.
// *api.Client implements it.
type PaperService interface {
	Preview(ctx context.Context, cfg paper.Config) (paper.PreviewResponse, error)
	GeneratePDF(ctx context.Context, req paper.PDFRequest) ([]byte, error)
	Presets(ctx context.Context, level paper.Level) ([]blocks.Block, error)
	StartAttempt(ctx context.Context, req api.StartAttemptRequest) (api.AttemptRecord, error)
	SubmitAttempt(ctx context.Context, id int64, req api.SubmitRequest) (api.AttemptResult, error)
}

var _ PaperService = (*api.Client)(nil)

// Deps are the collaborators handed to every screen.
type Deps struct {
	Papers PaperService

	// Rewards journals attempts locally. Nil runs without a journal.
	Rewards *rewards.Service

	Player    string
	Render    render.Options
	Supersede *api.Supersede
	Log       *zap.Logger

	// PDFDir is where exported papers are written. Empty means the
	// working directory.
	PDFDir string
}

// Logger returns the configured logger or a no-op one.
func (d Deps) Logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// Requests returns the supersede tracker, creating one if unset.
func (d *Deps) Requests() *api.Supersede {
	if d.Supersede == nil {
		d.Supersede = api.NewSupersede()
	}
	return d.Supersede
}

// ProfileMsg carries the player's running totals to the shell header.
type ProfileMsg struct {
	Profile store.Profile
}

// LoadProfile reads the player's profile. It returns nil without a journal.
func (d Deps) LoadProfile() tea.Cmd {
	if d.Rewards == nil {
		return nil
	}
	svc, player, log := d.Rewards, d.Player, d.Logger()
	return screen.Guard("profile", func() tea.Msg {
		p, err := svc.Profile(context.Background(), player)
		if err != nil {
			log.Warn("load profile failed", zap.Error(err))
			return nil
		}
		return ProfileMsg{Profile: p}
	})
}

// ErrorText turns an error into the line shown to the user.
func ErrorText(err error) string {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, api.ErrTimeout):
		return api.ErrTimeout.Error()
	}
	return err.Error()
}

// Centered renders text centered across width.
func Centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

// RenderLoading renders a centered loading line.
func RenderLoading(width int, what string) string {
	return Centered(width, theme.Subtitle, fmt.Sprintf("\n\n%s...", what))
}

// RenderError renders a centered error.
func RenderError(width int, msg string) string {
	return Centered(width, theme.ErrorText, "\n\n"+msg)
}
