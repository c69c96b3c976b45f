package paper

import (
	"strings"

	"github.com/abhisek/talenthub/internal/blocks"
	"github.com/abhisek/talenthub/internal/editor"
)

// Error is a user-facing paper error.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNoBlocks      Error = "Please add at least one question block"
	ErrInvalidBlocks Error = "Please fix the highlighted fields before continuing"
)

const defaultDigits = 2

// New returns an empty paper at level with the default title.
func New(level Level) Config {
	return Config{
		Level:          level,
		Title:          DefaultTitle,
		TotalQuestions: DefaultTotalQuestions,
		Orientation:    Portrait,
	}
}

// WithLevel switches the paper to level. Moving to Custom clears the
// blocks; preset levels keep them until the presets arrive.
func (c Config) WithLevel(level Level) Config {
	c.Level = level
	if level == LevelCustom {
		c.Blocks = nil
	}
	return c
}

// Validate checks c before it is sent for preview or export. The returned
// state carries per-field errors when ErrInvalidBlocks is returned.
func Validate(c Config) (editor.State, error) {
	st := editor.New(c.Blocks...)
	if len(c.Blocks) == 0 {
		if c.Level.HasPresets() {
			return st, nil
		}
		return st, ErrNoBlocks
	}
	st, ok := st.ValidateAll()
	if !ok {
		return st, ErrInvalidBlocks
	}
	return st, nil
}

// ResolveForSubmit returns the payload actually sent to the service. Empty
// sentinels become unset, the digit count always gets a value and blank
// titles are filled in. c is not modified.
func ResolveForSubmit(c Config) Config {
	out := c
	if strings.TrimSpace(out.Title) == "" {
		out.Title = DefaultTitle
	}
	if out.TotalQuestions == "" {
		out.TotalQuestions = DefaultTotalQuestions
	}
	if out.Orientation == "" {
		out.Orientation = Portrait
	}
	out.Blocks = make([]blocks.Block, len(c.Blocks))
	for i, b := range c.Blocks {
		out.Blocks[i] = resolveBlock(b)
	}
	return out
}

func resolveBlock(b blocks.Block) blocks.Block {
	out := b.Clone()
	for f, v := range out.Constraints {
		if v == blocks.Empty {
			delete(out.Constraints, f)
		}
	}
	if out.Count == blocks.Empty {
		out.Count = blocks.InitialCount
	}

	// A zero digits count means unset for the add/sub family, except
	// decimal add/sub which keeps it.
	d, set := out.Constraints[blocks.FieldDigits]
	if !set || (d == 0 && out.Type.IsAddSubFamily() && out.Type != blocks.DecimalAddSub) {
		out.Constraints[blocks.FieldDigits] = defaultDigits
	}

	if out.Title == "" {
		out.Title = blocks.DeriveTitle(out)
	}
	return out
}
