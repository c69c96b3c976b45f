// Package builder is the paper builder screen: pick a level, compose the
// block list and edit each block's constraints.
package builder

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/api"
	"github.com/abhisek/talenthub/internal/blocks"
	"github.com/abhisek/talenthub/internal/editor"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/router"
	"github.com/abhisek/talenthub/internal/screen"
	"github.com/abhisek/talenthub/internal/screens"
	"github.com/abhisek/talenthub/internal/screens/preview"
	"github.com/abhisek/talenthub/internal/ui/layout"
)

const (
	maxTitleLen = 60
	maxDigits   = 6
)

// presetsMsg carries the blocks the service curates for a level.
type presetsMsg struct {
	Level  paper.Level
	Blocks []blocks.Block
	Err    error
}

type cellKind int

const (
	cellLevel cellKind = iota
	cellPaperTitle
	cellType
	cellBlockTitle
	cellField
)

// cell is one focusable row of the form.
type cell struct {
	kind  cellKind
	block int
	field blocks.FieldSpec
}

func (c cell) inBlock() bool {
	return c.kind >= cellType
}

func (c cell) isText() bool {
	return c.kind == cellPaperTitle || c.kind == cellBlockTitle
}

// BuilderScreen edits a paper configuration.
type BuilderScreen struct {
	deps *screens.Deps

	level paper.Level
	title string
	ed    editor.State

	focus int
	buf   string // text of the focused title or field cell

	loadingPresets bool
	status         string
	statusErr      bool
}

var _ screen.Screen = (*BuilderScreen)(nil)
var _ screen.KeyHintProvider = (*BuilderScreen)(nil)

// New opens the builder on cfg. An empty custom paper starts with one
// block of the level's default type.
func New(deps *screens.Deps, cfg paper.Config) *BuilderScreen {
	deps.Requests()
	if cfg.Level == "" {
		cfg.Level = paper.LevelCustom
	}
	bs := cfg.Blocks
	if len(bs) == 0 && !cfg.Level.HasPresets() {
		bs = []blocks.Block{blocks.New(cfg.Level.DefaultBlockType())}
	}
	s := &BuilderScreen{
		deps:  deps,
		level: cfg.Level,
		title: cfg.Title,
		ed:    editor.New(bs...),
	}
	s.buf = s.cellText(s.cells()[0])
	return s
}

func (s *BuilderScreen) Init() tea.Cmd {
	if s.level.HasPresets() && s.ed.Len() == 0 {
		return s.loadPresets(s.level)
	}
	return nil
}

func (s *BuilderScreen) Title() string {
	return "Paper Builder"
}

func (s *BuilderScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Move"}}
	switch s.current().kind {
	case cellLevel, cellType:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change"})
	case cellField:
		hints = append(hints, layout.KeyHint{Key: "0-9", Description: "Edit"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+N", Description: "Add"},
		layout.KeyHint{Key: "Ctrl+D", Description: "Duplicate"},
		layout.KeyHint{Key: "Ctrl+X", Description: "Remove"},
		layout.KeyHint{Key: "Alt+↑↓", Description: "Reorder"},
		layout.KeyHint{Key: "Ctrl+S", Description: "Save"},
		layout.KeyHint{Key: "Enter", Description: "Preview"},
	)
}

// Config returns the paper as currently edited.
func (s *BuilderScreen) Config() paper.Config {
	cfg := paper.New(s.level)
	cfg.Title = s.title
	cfg.Blocks = s.ed.Blocks()
	return cfg
}

func (s *BuilderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case presetsMsg:
		return s.handlePresets(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *BuilderScreen) handlePresets(msg presetsMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, api.ErrSuperseded) || msg.Level != s.level {
		return s, nil
	}
	s.loadingPresets = false
	if msg.Err != nil {
		s.setStatus("Could not load presets: "+screens.ErrorText(msg.Err), true)
		s.deps.Logger().Warn("load presets failed", zap.String("level", string(msg.Level)), zap.Error(msg.Err))
		return s, nil
	}
	s.ed = s.ed.Replace(msg.Blocks)
	s.focus = min(s.focus, len(s.cells())-1)
	s.buf = s.cellText(s.current())
	s.setStatus("", false)
	return s, nil
}

func (s *BuilderScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	c := s.current()
	key := msg.String()

	switch key {
	case "up", "shift+tab":
		s.moveFocus(-1)
		return s, nil
	case "down", "tab":
		s.moveFocus(1)
		return s, nil
	case "left":
		return s, s.cycle(c, -1)
	case "right":
		return s, s.cycle(c, 1)
	case "enter":
		return s, s.openPreview()
	case "ctrl+n":
		s.addBlock()
		return s, nil
	case "ctrl+d":
		s.blockAction(c, s.ed.Duplicate, 1)
		return s, nil
	case "ctrl+x":
		s.blockAction(c, s.ed.Remove, 0)
		return s, nil
	case "alt+up":
		s.reorder(c, -1)
		return s, nil
	case "alt+down":
		s.reorder(c, 1)
		return s, nil
	case "ctrl+s":
		s.save()
		return s, nil
	case "backspace":
		r := []rune(s.buf)
		s.edit(c, string(r[:max(len(r)-1, 0)]))
		return s, nil
	case "ctrl+u":
		s.edit(c, "")
		return s, nil
	}

	kp, ok := msg.(tea.KeyPressMsg)
	if !ok || kp.Text == "" {
		return s, nil
	}
	switch {
	case c.kind == cellField:
		if len(kp.Text) == 1 && kp.Text[0] >= '0' && kp.Text[0] <= '9' && len(s.buf) < maxDigits {
			s.edit(c, s.buf+kp.Text)
		}
	case c.isText():
		if len([]rune(s.buf)) < maxTitleLen {
			s.edit(c, s.buf+kp.Text)
		}
	}
	return s, nil
}

// cells lists the focusable rows in display order.
func (s *BuilderScreen) cells() []cell {
	out := []cell{{kind: cellLevel}, {kind: cellPaperTitle}}
	for i, b := range s.ed.Blocks() {
		out = append(out, cell{kind: cellType, block: i}, cell{kind: cellBlockTitle, block: i})
		spec, ok := blocks.Lookup(b.Type)
		if !ok {
			continue
		}
		for _, fs := range spec.Editable() {
			out = append(out, cell{kind: cellField, block: i, field: fs})
		}
	}
	return out
}

func (s *BuilderScreen) current() cell {
	cs := s.cells()
	return cs[min(max(s.focus, 0), len(cs)-1)]
}

// cellText is the editable text of c.
func (s *BuilderScreen) cellText(c cell) string {
	switch c.kind {
	case cellPaperTitle:
		return s.title
	case cellBlockTitle:
		b, _ := s.ed.Block(c.block)
		return b.Title
	case cellField:
		b, _ := s.ed.Block(c.block)
		if v, ok := b.Get(c.field.Field); ok && v != blocks.Empty {
			return strconv.Itoa(v)
		}
	}
	return ""
}

// moveFocus leaves the focused cell, finalizing a field edit, and focuses
// the cell delta rows away.
func (s *BuilderScreen) moveFocus(delta int) {
	s.leave()
	n := len(s.cells())
	s.focus = min(max(s.focus+delta, 0), n-1)
	s.buf = s.cellText(s.current())
}

func (s *BuilderScreen) leave() {
	c := s.current()
	if c.kind == cellField {
		s.ed = s.ed.Blur(c.block, c.field.Field)
	}
}

func (s *BuilderScreen) edit(c cell, text string) {
	switch c.kind {
	case cellPaperTitle:
		s.title = text
	case cellBlockTitle:
		s.ed = s.ed.SetTitle(c.block, text)
	case cellField:
		s.ed = s.ed.SetField(c.block, c.field.Field, text)
	default:
		return
	}
	s.buf = text
}

// cycle steps the level or the block type under the cursor.
func (s *BuilderScreen) cycle(c cell, delta int) tea.Cmd {
	switch c.kind {
	case cellLevel:
		levels := paper.AllLevels()
		return s.setLevel(levels[step(slices.Index(levels, s.level), delta, len(levels))])
	case cellType:
		b, _ := s.ed.Block(c.block)
		types := s.level.TypesFor()
		if len(types) == 0 {
			return nil
		}
		s.ed = s.ed.SetType(c.block, types[step(slices.Index(types, b.Type), delta, len(types))])
		s.buf = s.cellText(s.current())
	}
	return nil
}

func step(i, delta, n int) int {
	if i < 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

// setLevel switches the paper level. Preset levels fetch their blocks;
// Custom starts over with a single default block.
func (s *BuilderScreen) setLevel(level paper.Level) tea.Cmd {
	cfg := s.Config().WithLevel(level)
	s.level = level
	s.ed = s.ed.Replace(cfg.Blocks)
	s.setStatus("", false)

	if level.HasPresets() {
		return s.loadPresets(level)
	}
	s.deps.Supersede.Cancel(api.KindPresets)
	s.loadingPresets = false
	if s.ed.Len() == 0 {
		s.ed = s.ed.Add(level.DefaultBlockType())
	}
	return nil
}

func (s *BuilderScreen) loadPresets(level paper.Level) tea.Cmd {
	if s.deps.Papers == nil {
		return nil
	}
	s.loadingPresets = true
	papers, sup := s.deps.Papers, s.deps.Supersede
	return screen.Guard("presets", func() tea.Msg {
		bs, _, err := api.Run(context.Background(), sup, api.KindPresets, func(ctx context.Context) ([]blocks.Block, error) {
			return papers.Presets(ctx, level)
		})
		return presetsMsg{Level: level, Blocks: bs, Err: err}
	})
}

func (s *BuilderScreen) addBlock() {
	s.leave()
	s.ed = s.ed.Add(s.level.DefaultBlockType())
	s.focusBlock(s.ed.Len() - 1)
}

// blockAction applies op to the block under the cursor and then focuses
// the block offset positions after it.
func (s *BuilderScreen) blockAction(c cell, op func(int) editor.State, offset int) {
	if !c.inBlock() {
		return
	}
	s.leave()
	s.ed = op(c.block)
	s.focusBlock(min(c.block+offset, s.ed.Len()-1))
}

func (s *BuilderScreen) reorder(c cell, delta int) {
	if !c.inBlock() {
		return
	}
	s.leave()
	if delta < 0 {
		s.ed = s.ed.MoveUp(c.block)
	} else {
		s.ed = s.ed.MoveDown(c.block)
	}
	s.focusBlock(min(max(c.block+delta, 0), s.ed.Len()-1))
}

// focusBlock puts the cursor on the type row of block i, or on the paper
// title when there are no blocks.
func (s *BuilderScreen) focusBlock(i int) {
	s.focus = 1
	for j, c := range s.cells() {
		if c.kind == cellType && c.block == i {
			s.focus = j
			break
		}
	}
	s.buf = s.cellText(s.current())
}

// openPreview validates the paper and, when it passes, opens the preview.
func (s *BuilderScreen) openPreview() tea.Cmd {
	s.leave()
	s.buf = s.cellText(s.current())
	cfg := s.Config()
	st, err := paper.Validate(cfg)
	if err != nil {
		if errors.Is(err, paper.ErrInvalidBlocks) {
			s.ed = st
		}
		s.setStatus(err.Error(), true)
		return nil
	}
	s.setStatus("", false)
	next := preview.New(s.deps, cfg)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// save writes the paper definition next to exported PDFs.
func (s *BuilderScreen) save() {
	s.leave()
	cfg := s.Config()
	path := filepath.Join(s.deps.PDFDir, strings.TrimSuffix(preview.PDFName(cfg.Title, false), ".pdf")+".yaml")
	if err := paper.SaveFile(path, cfg); err != nil {
		s.setStatus("Save failed: "+err.Error(), true)
		return
	}
	s.setStatus("Saved "+path, false)
}

func (s *BuilderScreen) setStatus(msg string, isErr bool) {
	s.status = msg
	s.statusErr = isErr
}
