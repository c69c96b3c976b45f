package paper

import (
	"math"

	"github.com/abhisek/talenthub/internal/blocks"
)

// Preset is a block as delivered by the preset endpoint. Every field may be
// missing.
type Preset struct {
	ID          string             `json:"id"`
	Type        blocks.OpType      `json:"type"`
	Count       *float64           `json:"count"`
	Constraints blocks.Constraints `json:"constraints"`
	Title       *string            `json:"title"`
}

// ConvertPresets copies presets into blocks field by field. Absent
// constraint fields stay unset so type defaults apply later; a missing or
// zero count becomes the initial count and a missing id is generated.
func ConvertPresets(presets []Preset) []blocks.Block {
	out := make([]blocks.Block, 0, len(presets))
	for _, p := range presets {
		b := blocks.Block{
			ID:          p.ID,
			Type:        p.Type,
			Count:       blocks.InitialCount,
			Constraints: p.Constraints.Clone(),
		}
		if b.ID == "" {
			b.ID = blocks.NewID()
		}
		if p.Count != nil && *p.Count != 0 {
			b.Count = int(math.Round(*p.Count))
		}
		if p.Title != nil {
			b.Title = *p.Title
		}
		out = append(out, blocks.AdoptTitle(b))
	}
	return out
}
