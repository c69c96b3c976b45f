package api

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/blocks"
	"github.com/abhisek/talenthub/internal/paper"
)

// Preview asks the service to generate questions for cfg. The config is
// resolved for submission first.
func (c *Client) Preview(ctx context.Context, cfg paper.Config) (paper.PreviewResponse, error) {
	var out paper.PreviewResponse
	err := c.call(ctx, http.MethodPost, "/papers/preview", paper.ResolveForSubmit(cfg), c.cfg.Timeout, schemaPreview, &out)
	if err != nil {
		return paper.PreviewResponse{}, err
	}
	for i := range out.Blocks {
		out.Blocks[i].Config = blocks.AdoptTitle(out.Blocks[i].Config)
	}
	c.log.Info("preview generated",
		zap.String("level", string(cfg.Level)),
		zap.Int("blocks", len(out.Blocks)),
		zap.Int("questions", len(out.Questions())),
		zap.Int64("seed", out.Seed),
	)
	return out, nil
}

// GeneratePDF exports the paper as a PDF document.
func (c *Client) GeneratePDF(ctx context.Context, req paper.PDFRequest) ([]byte, error) {
	req.Config = paper.ResolveForSubmit(req.Config)
	data, err := c.send(ctx, http.MethodPost, c.url("/papers/generate-pdf"), req, c.cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, invalidResponse(data, msgEmptyResponse)
	}
	return data, nil
}

// Presets loads the curated blocks for level.
func (c *Client) Presets(ctx context.Context, level paper.Level) ([]blocks.Block, error) {
	var presets []paper.Preset
	path := "/presets/" + url.PathEscape(string(level))
	if err := c.call(ctx, http.MethodGet, path, nil, c.cfg.PresetTimeout, schemaPresets, &presets); err != nil {
		return nil, err
	}
	return paper.ConvertPresets(presets), nil
}
