package builder

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/talenthub/internal/api"
	"github.com/abhisek/talenthub/internal/blocks"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/render"
	"github.com/abhisek/talenthub/internal/router"
	"github.com/abhisek/talenthub/internal/screens"
	"github.com/abhisek/talenthub/internal/screens/screenstest"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func typeText(s *BuilderScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func down(s *BuilderScreen, n int) {
	for range n {
		s.Update(specialKey(tea.KeyDown))
	}
}

func testBuilderScreen(t *testing.T, papers *screenstest.Papers) *BuilderScreen {
	t.Helper()
	deps := &screens.Deps{Papers: papers, Render: render.DefaultOptions(), PDFDir: t.TempDir()}
	return New(deps, paper.New(paper.LevelCustom))
}

// Cells of a fresh custom paper: level, paper title, type, section title,
// questions, digits, rows.
const (
	focusTitle  = 1
	focusType   = 2
	focusCount  = 4
	focusDigits = 5
)

func TestBuilderScreen_StartsWithDefaultBlock(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})
	if s.Title() != "Paper Builder" {
		t.Errorf("Title = %q", s.Title())
	}
	if s.ed.Len() != 1 {
		t.Fatalf("blocks = %d, want 1", s.ed.Len())
	}
	b, _ := s.ed.Block(0)
	if b.Type != blocks.AddSub {
		t.Errorf("type = %s, want add_sub", b.Type)
	}
	if n := len(s.cells()); n != 7 {
		t.Errorf("cells = %d, want 7", n)
	}
	if s.Init() != nil {
		t.Error("custom paper should not load presets")
	}

	view := s.View(100, 40)
	for _, want := range []string{"Custom", "Block 1 of 1", "Questions (1-200)", "Digits (1-10)", "Rows (2-30)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBuilderScreen_FieldClampsOnBlur(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})
	down(s, focusDigits)
	s.Update(ctrl('u'))
	typeText(s, "42x")

	b, _ := s.ed.Block(0)
	if v, _ := b.Get(blocks.FieldDigits); v != 42 {
		t.Fatalf("digits = %d, want 42 while typing", v)
	}
	if msg := s.ed.Error(b.ID, blocks.FieldDigits); msg != "Maximum value for Digits is 10" {
		t.Errorf("error = %q", msg)
	}
	if !strings.Contains(s.View(100, 40), "Maximum value for Digits is 10") {
		t.Error("view should show the field error")
	}

	down(s, 1)
	b, _ = s.ed.Block(0)
	if v, _ := b.Get(blocks.FieldDigits); v != 10 {
		t.Errorf("digits = %d, want clamped to 10", v)
	}
	if msg := s.ed.Error(b.ID, blocks.FieldDigits); msg != "" {
		t.Errorf("error after blur = %q", msg)
	}
}

func TestBuilderScreen_RequiredFieldRevertsOnBlur(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})
	down(s, focusCount)
	if s.buf != "10" {
		t.Fatalf("buf = %q, want 10", s.buf)
	}
	s.Update(specialKey(tea.KeyBackspace))
	s.Update(specialKey(tea.KeyBackspace))

	b, _ := s.ed.Block(0)
	if b.Count != blocks.Empty {
		t.Fatalf("count = %d, want empty", b.Count)
	}

	down(s, 1)
	b, _ = s.ed.Block(0)
	if b.Count != blocks.CountSpec.Default {
		t.Errorf("count = %d, want default %d", b.Count, blocks.CountSpec.Default)
	}
	if msg := s.ed.Error(b.ID, blocks.FieldCount); msg != "Questions is required" {
		t.Errorf("error = %q", msg)
	}
}

func TestBuilderScreen_TypeCycle(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})
	down(s, focusType)

	types := paper.LevelCustom.TypesFor()
	i := slices.Index(types, blocks.AddSub)
	s.Update(specialKey(tea.KeyRight))
	b, _ := s.ed.Block(0)
	if want := types[(i+1)%len(types)]; b.Type != want {
		t.Errorf("type = %s, want %s", b.Type, want)
	}

	for range i + 2 {
		s.Update(specialKey(tea.KeyLeft))
	}
	b, _ = s.ed.Block(0)
	if want := types[len(types)-1]; b.Type != want {
		t.Errorf("type = %s, want wrap to %s", b.Type, want)
	}
}

func TestBuilderScreen_BlockActions(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})

	s.Update(ctrl('n'))
	if s.ed.Len() != 2 {
		t.Fatalf("after add: %d blocks", s.ed.Len())
	}
	if c := s.current(); c.kind != cellType || c.block != 1 {
		t.Errorf("focus after add = %+v, want type row of block 2", c)
	}

	s.Update(specialKey(tea.KeyRight))
	s.Update(ctrl('d'))
	if s.ed.Len() != 3 {
		t.Fatalf("after duplicate: %d blocks", s.ed.Len())
	}
	second, _ := s.ed.Block(1)
	third, _ := s.ed.Block(2)
	if second.Type != third.Type || second.ID == third.ID {
		t.Errorf("duplicate = %+v / %+v", second, third)
	}
	if c := s.current(); c.block != 2 {
		t.Errorf("focus after duplicate on block %d, want 2", c.block)
	}

	s.Update(ctrl('x'))
	if s.ed.Len() != 2 {
		t.Fatalf("after remove: %d blocks", s.ed.Len())
	}
	if c := s.current(); c.block != 1 {
		t.Errorf("focus after remove on block %d, want 1", c.block)
	}
}

func TestBuilderScreen_Reorder(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})
	s.Update(ctrl('n'))
	s.Update(specialKey(tea.KeyRight))
	moved, _ := s.ed.Block(1)

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModAlt})
	first, _ := s.ed.Block(0)
	if first.ID != moved.ID {
		t.Errorf("block 1 = %s, want moved block %s", first.ID, moved.ID)
	}
	if c := s.current(); c.kind != cellType || c.block != 0 {
		t.Errorf("focus should follow the block, got %+v", c)
	}
}

func TestBuilderScreen_EditPaperTitle(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})
	down(s, focusTitle)
	s.Update(ctrl('u'))
	typeText(s, "Quiz 7")
	if got := s.Config().Title; got != "Quiz 7" {
		t.Errorf("title = %q", got)
	}
}

func TestBuilderScreen_SectionTitleDefaultsToDerived(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})
	b, _ := s.ed.Block(0)
	if !strings.Contains(s.View(100, 40), blocks.DeriveTitle(b)) {
		t.Error("empty section title should show the derived title")
	}
}

func TestBuilderScreen_LoadsPresets(t *testing.T) {
	papers := &screenstest.Papers{PresetList: []blocks.Block{blocks.New(blocks.DirectAddSub), blocks.New(blocks.Addition)}}
	s := testBuilderScreen(t, papers)

	_, cmd := s.Update(specialKey(tea.KeyRight))
	if s.level != paper.LevelJunior {
		t.Fatalf("level = %s, want Junior", s.level)
	}
	if cmd == nil || !s.loadingPresets {
		t.Fatal("expected a presets request")
	}
	if !strings.Contains(s.View(100, 40), "Loading presets for Junior") {
		t.Error("view should show loading status")
	}

	s.Update(cmd())
	if s.loadingPresets {
		t.Error("still loading")
	}
	if s.ed.Len() != 2 {
		t.Fatalf("blocks = %d, want 2", s.ed.Len())
	}
	if len(papers.Levels) != 1 || papers.Levels[0] != paper.LevelJunior {
		t.Errorf("presets requested for %v", papers.Levels)
	}
}

func TestBuilderScreen_IgnoresStalePresets(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})
	s.Update(presetsMsg{Level: paper.LevelJunior, Blocks: []blocks.Block{blocks.New(blocks.Addition), blocks.New(blocks.Addition)}})
	if s.ed.Len() != 1 {
		t.Errorf("presets for another level replaced blocks: %d", s.ed.Len())
	}

	s.Update(specialKey(tea.KeyRight))
	s.Update(presetsMsg{Level: paper.LevelJunior, Err: api.ErrSuperseded})
	if !s.loadingPresets {
		t.Error("superseded result should leave the newer request pending")
	}
}

func TestBuilderScreen_PresetsError(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{PresetErr: &api.Error{Status: 503, Message: "service unavailable"}})
	_, cmd := s.Update(specialKey(tea.KeyRight))
	s.Update(cmd())
	if !s.statusErr || !strings.Contains(s.status, "service unavailable") {
		t.Errorf("status = %q", s.status)
	}
}

func TestBuilderScreen_BackToCustomStartsOver(t *testing.T) {
	papers := &screenstest.Papers{PresetList: []blocks.Block{blocks.New(blocks.DirectAddSub), blocks.New(blocks.Addition)}}
	s := testBuilderScreen(t, papers)
	_, cmd := s.Update(specialKey(tea.KeyRight))
	s.Update(cmd())

	_, cmd = s.Update(specialKey(tea.KeyLeft))
	if cmd != nil {
		t.Error("custom level should not request presets")
	}
	if s.level != paper.LevelCustom || s.ed.Len() != 1 {
		t.Fatalf("level %s with %d blocks", s.level, s.ed.Len())
	}
	b, _ := s.ed.Block(0)
	if b.Type != paper.LevelCustom.DefaultBlockType() {
		t.Errorf("type = %s", b.Type)
	}
}

func TestBuilderScreen_PreviewPushesScreen(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected navigation")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Errorf("expected PushScreenMsg, got %T", cmd())
	}
}

func TestBuilderScreen_PreviewNeedsBlocks(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})
	down(s, focusType)
	s.Update(ctrl('x'))
	if s.ed.Len() != 0 {
		t.Fatalf("blocks = %d", s.ed.Len())
	}
	if !strings.Contains(s.View(100, 40), "No blocks yet") {
		t.Error("empty paper should hint at adding a block")
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("empty paper should not open the preview")
	}
	if s.status != paper.ErrNoBlocks.Error() || !s.statusErr {
		t.Errorf("status = %q", s.status)
	}
}

func TestBuilderScreen_SaveWritesYAML(t *testing.T) {
	s := testBuilderScreen(t, &screenstest.Papers{})
	down(s, focusTitle)
	s.Update(ctrl('u'))
	typeText(s, "Week 3")
	s.Update(ctrl('s'))

	path := filepath.Join(s.deps.PDFDir, "week-3.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved paper: %v (status %q)", err, s.status)
	}
	if !strings.Contains(string(data), "Week 3") || !strings.Contains(string(data), "add_sub") {
		t.Errorf("saved paper:\n%s", data)
	}
	if s.status != "Saved "+path {
		t.Errorf("status = %q", s.status)
	}
}
