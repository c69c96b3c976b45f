package paper

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/talenthub/internal/blocks"
)

func TestValidate_CustomNeedsBlocks(t *testing.T) {
	_, err := Validate(New(LevelCustom))
	if !errors.Is(err, ErrNoBlocks) {
		t.Fatalf("Validate(empty custom) = %v, want ErrNoBlocks", err)
	}
	if err.Error() != "Please add at least one question block" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestValidate_PresetLevelWithoutBlocks(t *testing.T) {
	for _, l := range []Level{ABLevel(3), LevelJunior, LevelAdvanced} {
		if _, err := Validate(New(l)); err != nil {
			t.Errorf("Validate(%s, no blocks) = %v, want nil", l, err)
		}
	}
}

func TestValidate_ReportsFieldErrors(t *testing.T) {
	b := blocks.New(blocks.Addition).With(blocks.FieldDigits, 99)
	c := New(LevelCustom)
	c.Blocks = []blocks.Block{b}

	st, err := Validate(c)
	if !errors.Is(err, ErrInvalidBlocks) {
		t.Fatalf("err = %v, want ErrInvalidBlocks", err)
	}
	if got := st.Error(b.ID, blocks.FieldDigits); got != "Maximum value for Digits is 10" {
		t.Errorf("digits error = %q", got)
	}
}

func TestWithLevel_CustomClearsBlocks(t *testing.T) {
	c := New(ABLevel(2))
	c.Blocks = []blocks.Block{blocks.New(blocks.AddSub)}

	if got := c.WithLevel(LevelJunior); len(got.Blocks) != 1 {
		t.Errorf("preset level dropped blocks")
	}
	if got := c.WithLevel(LevelCustom); len(got.Blocks) != 0 {
		t.Errorf("custom kept %d blocks", len(got.Blocks))
	}
	if len(c.Blocks) != 1 {
		t.Errorf("receiver modified")
	}
}

func TestResolveForSubmit(t *testing.T) {
	add := blocks.New(blocks.Addition).With(blocks.FieldRows, blocks.Empty).With(blocks.FieldDigits, 0)
	add.Title = ""
	lcm := blocks.New(blocks.LCM)
	tables := blocks.New(blocks.VedicTables).With(blocks.FieldDigits, 0)
	decimal := blocks.New(blocks.DecimalAddSub).With(blocks.FieldDigits, 0)
	bare := blocks.New(blocks.DecimalAddSub)
	delete(bare.Constraints, blocks.FieldDigits)

	c := Config{Level: LevelCustom, Title: "  ", Blocks: []blocks.Block{add, lcm, tables, decimal, bare}}
	got := ResolveForSubmit(c)

	if got.Title != DefaultTitle {
		t.Errorf("title = %q", got.Title)
	}
	if got.TotalQuestions != "20" || got.Orientation != Portrait {
		t.Errorf("defaults = %q/%q", got.TotalQuestions, got.Orientation)
	}
	if _, ok := got.Blocks[0].Constraints[blocks.FieldRows]; ok {
		t.Errorf("empty rows was sent")
	}
	if d := got.Blocks[0].Constraints[blocks.FieldDigits]; d != 2 {
		t.Errorf("add/sub digits = %d, want 2", d)
	}
	if got.Blocks[0].Title != "Addition 2D 3R" {
		t.Errorf("derived title = %q", got.Blocks[0].Title)
	}
	if d := got.Blocks[1].Constraints[blocks.FieldDigits]; d != 2 {
		t.Errorf("lcm digits = %d, want 2", d)
	}
	// A zero on a non add/sub type is kept.
	if d := got.Blocks[2].Constraints[blocks.FieldDigits]; d != 0 {
		t.Errorf("tables digits = %d, want 0", d)
	}
	// Decimal add/sub keeps a zero and only defaults a missing value.
	if d := got.Blocks[3].Constraints[blocks.FieldDigits]; d != 0 {
		t.Errorf("decimal add/sub digits = %d, want 0", d)
	}
	if d := got.Blocks[4].Constraints[blocks.FieldDigits]; d != 2 {
		t.Errorf("unset decimal add/sub digits = %d, want 2", d)
	}

	if _, ok := c.Blocks[0].Constraints[blocks.FieldRows]; !ok {
		t.Errorf("input was modified")
	}
}

func TestConvertPresets(t *testing.T) {
	raw := `[
		{"id":"p1","type":"addition","count":5,"constraints":{"digits":3,"rows":4,"allowBorrow":null,"negative":true},"title":"Warm up"},
		{"type":"lcm","constraints":{}},
		{"id":"p3","type":"subtraction","count":0,"constraints":{"digits":2},"title":"Subtraction 2D 3R"}
	]`
	var presets []Preset
	if err := json.Unmarshal([]byte(raw), &presets); err != nil {
		t.Fatal(err)
	}
	got := ConvertPresets(presets)
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}

	if got[0].ID != "p1" || got[0].Count != 5 {
		t.Errorf("block 0 = %+v", got[0])
	}
	if len(got[0].Constraints) != 2 {
		t.Errorf("constraints = %v, want digits and rows only", got[0].Constraints)
	}
	if !got[0].TitleIsCustom {
		t.Errorf("hand-written preset title should be custom")
	}

	if got[1].ID == "" || got[1].Count != blocks.InitialCount {
		t.Errorf("block 1 = %+v", got[1])
	}
	if _, ok := got[1].Constraints[blocks.FieldMultiplicandDigits]; ok {
		t.Errorf("absent field was filled")
	}
	if got[1].TitleIsCustom || got[1].Title == "" {
		t.Errorf("missing title should be derived, got %q custom=%v", got[1].Title, got[1].TitleIsCustom)
	}

	if got[2].Count != blocks.InitialCount {
		t.Errorf("zero count = %d", got[2].Count)
	}
	if got[2].TitleIsCustom {
		t.Errorf("title equal to derived should stay automatic")
	}
}

func TestFileRoundTrip(t *testing.T) {
	custom := blocks.New(blocks.Multiplication)
	custom.Title = "Times tables"
	custom.TitleIsCustom = true
	auto := blocks.New(blocks.SquareRoot)

	c := New(ABLevel(4))
	c.Title = "Week 3"
	c.Blocks = []blocks.Block{custom, auto}

	path := filepath.Join(t.TempDir(), "paper.yaml")
	if err := SaveFile(path, c); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.Level != c.Level || got.Title != "Week 3" || len(got.Blocks) != 2 {
		t.Fatalf("loaded %+v", got)
	}
	if !got.Blocks[0].TitleIsCustom || got.Blocks[0].Title != "Times tables" {
		t.Errorf("custom title lost: %+v", got.Blocks[0])
	}
	if got.Blocks[1].TitleIsCustom || got.Blocks[1].Title != blocks.DeriveTitle(auto) {
		t.Errorf("auto title = %q custom=%v", got.Blocks[1].Title, got.Blocks[1].TitleIsCustom)
	}
	if got.Blocks[1].ID != auto.ID {
		t.Errorf("id not preserved")
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad level", "level: AB-99\n"},
		{"bad type", "blocks:\n  - type: cosine\n    count: 3\n"},
		{"bad field", "blocks:\n  - type: addition\n    count: 3\n    constraints:\n      colour: 2\n"},
		{"not yaml", "blocks: [\n"},
	}
	for _, tc := range tests {
		if _, err := Decode([]byte(tc.doc)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestDecode_FillsGaps(t *testing.T) {
	c, err := Decode([]byte("blocks:\n  - type: addition\n    constraints:\n      digits: 3\n      rows: 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Level != LevelCustom || c.Title != DefaultTitle {
		t.Errorf("defaults = %q/%q", c.Level, c.Title)
	}
	b := c.Blocks[0]
	if b.ID == "" || b.Count != blocks.InitialCount || b.Title != "Addition 3D 4R" {
		t.Errorf("block = %+v", b)
	}
}

func TestLevels(t *testing.T) {
	if n := len(AllLevels()); n != 17 {
		t.Errorf("len(AllLevels) = %d, want 17", n)
	}
	if !ABLevel(10).Valid() || Level("AB-11").Valid() {
		t.Errorf("AB level validity wrong")
	}
	if LevelVedic2.HasPresets() || LevelCustom.HasPresets() {
		t.Errorf("level without presets reports presets")
	}
	for _, typ := range LevelVedic1.TypesFor() {
		if !typ.IsVedic() {
			t.Errorf("vedic level offers %s", typ)
		}
	}
	if got := LevelJunior.DefaultBlockType(); got != blocks.DirectAddSub {
		t.Errorf("junior default = %s", got)
	}
}
