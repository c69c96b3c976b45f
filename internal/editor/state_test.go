package editor

import (
	"strconv"
	"testing"

	"github.com/abhisek/talenthub/internal/blocks"
)

func stateWith(types ...blocks.OpType) State {
	s := New()
	for _, t := range types {
		s = s.Add(t)
	}
	return s
}

func mustBlock(t *testing.T, s State, i int) blocks.Block {
	t.Helper()
	b, ok := s.Block(i)
	if !ok {
		t.Fatalf("no block at %d", i)
	}
	return b
}

func TestAddition_TitleScenario(t *testing.T) {
	s := stateWith(blocks.Addition)
	s = s.SetField(0, blocks.FieldDigits, "3")
	s = s.SetField(0, blocks.FieldRows, "4")
	s = s.SetField(0, blocks.FieldCount, "10")

	b := mustBlock(t, s, 0)
	if b.Title != "Addition 3D 4R" {
		t.Errorf("Title = %q, want %q", b.Title, "Addition 3D 4R")
	}
	if s.HasErrors() {
		t.Errorf("unexpected errors: %v", s.FieldErrors(b.ID))
	}
}

func TestSwitchToLCM_ResetsAndRetitles(t *testing.T) {
	s := stateWith(blocks.Addition)
	s = s.SetField(0, blocks.FieldDigits, "3")
	s = s.SetField(0, blocks.FieldRows, "4")
	s = s.SetType(0, blocks.LCM)

	b := mustBlock(t, s, 0)
	if v, _ := b.Constraints.Value(blocks.FieldMultiplicandDigits); v != 2 {
		t.Errorf("multiplicandDigits = %d, want 2", v)
	}
	if v, _ := b.Constraints.Value(blocks.FieldMultiplierDigits); v != 2 {
		t.Errorf("multiplierDigits = %d, want 2", v)
	}
	if b.Title != "LCM (2×2 digits)" {
		t.Errorf("Title = %q, want %q", b.Title, "LCM (2×2 digits)")
	}
}

func TestTypeChangeResets(t *testing.T) {
	tests := []struct {
		to    blocks.OpType
		field blocks.Field
		want  int
	}{
		{blocks.SquareRoot, blocks.FieldRootDigits, 4},
		{blocks.CubeRoot, blocks.FieldRootDigits, 5},
		{blocks.GCD, blocks.FieldMultiplicandDigits, 3},
		{blocks.GCD, blocks.FieldMultiplierDigits, 2},
		{blocks.Percentage, blocks.FieldNumberDigits, 4},
		{blocks.VedicTables, blocks.FieldRows, 10},
		{blocks.VedicDivideBy11, blocks.FieldDigits, 3},
	}
	for _, tc := range tests {
		s := stateWith(blocks.AddSub)
		// Carry over values that the reset must override.
		s = s.Update(0, Patch{Constraints: blocks.Constraints{
			blocks.FieldRootDigits: 9, blocks.FieldMultiplicandDigits: 7,
			blocks.FieldMultiplierDigits: 7, blocks.FieldNumberDigits: 9,
			blocks.FieldRows: 20, blocks.FieldDigits: 8,
		}})
		s = s.SetType(0, tc.to)
		b := mustBlock(t, s, 0)
		if got, _ := b.Constraints.Value(tc.field); got != tc.want {
			t.Errorf("switch to %s: %s = %d, want %d", tc.to, tc.field, got, tc.want)
		}
	}
}

func TestCountEmptyThenBlur(t *testing.T) {
	s := stateWith(blocks.AddSub)
	s = s.SetField(0, blocks.FieldCount, "")
	b := mustBlock(t, s, 0)
	if b.Count != blocks.Empty {
		t.Fatalf("Count = %d, want Empty", b.Count)
	}
	if msg := s.Error(b.ID, blocks.FieldCount); msg != "" {
		t.Errorf("error while empty = %q, want none", msg)
	}

	s = s.Blur(0, blocks.FieldCount)
	b = mustBlock(t, s, 0)
	if b.Count != 1 {
		t.Errorf("Count = %d, want 1", b.Count)
	}
	if msg := s.Error(b.ID, blocks.FieldCount); msg != "Questions is required" {
		t.Errorf("error = %q, want %q", msg, "Questions is required")
	}
}

func TestKeystrokeValidation(t *testing.T) {
	s := stateWith(blocks.Multiplication)
	id := mustBlock(t, s, 0).ID

	s = s.SetField(0, blocks.FieldMultiplicandDigits, "25")
	if got := s.Error(id, blocks.FieldMultiplicandDigits); got != "Maximum value for Multiplicand Digits is 20" {
		t.Errorf("error = %q", got)
	}
	// The out-of-range value is kept while typing.
	if v, _ := mustBlock(t, s, 0).Constraints.Value(blocks.FieldMultiplicandDigits); v != 25 {
		t.Errorf("stored = %d, want 25", v)
	}

	s = s.SetField(0, blocks.FieldMultiplicandDigits, "2")
	if got := s.Error(id, blocks.FieldMultiplicandDigits); got != "" {
		t.Errorf("error after fix = %q, want none", got)
	}

	before := s
	s = s.SetField(0, blocks.FieldMultiplicandDigits, "2a")
	if v, _ := mustBlock(t, s, 0).Constraints.Value(blocks.FieldMultiplicandDigits); v != 2 {
		t.Errorf("non-numeric input changed value to %d", v)
	}
	if len(before.Blocks()) != len(s.Blocks()) {
		t.Error("non-numeric input changed block list")
	}
}

func TestBlurClampsEveryField(t *testing.T) {
	for _, typ := range blocks.AllTypes() {
		spec, _ := blocks.Lookup(typ)
		for _, fs := range spec.Editable() {
			if fs.Optional {
				continue
			}
			check := func(raw string, want int) {
				s := stateWith(typ)
				s = s.SetField(0, fs.Field, raw)
				s = s.Blur(0, fs.Field)
				b := mustBlock(t, s, 0)
				got, _ := b.Get(fs.Field)
				if got != want {
					t.Errorf("%s.%s: blur(%s) stored %d, want %d", typ, fs.Field, raw, got, want)
				}
				if msg := s.Error(b.ID, fs.Field); msg != "" {
					t.Errorf("%s.%s: blur(%s) left error %q", typ, fs.Field, raw, msg)
				}
			}
			if fs.Min > 0 {
				check(strconv.Itoa(fs.Min-1), fs.Min)
			}
			check(strconv.Itoa(fs.Max+1), fs.Max)
		}
	}
}

func TestBlurEmptyRestoresDefault(t *testing.T) {
	for _, typ := range blocks.AllTypes() {
		spec, _ := blocks.Lookup(typ)
		for _, fs := range spec.Editable() {
			if fs.Optional {
				continue
			}
			s := stateWith(typ)
			s = s.SetField(0, fs.Field, "")
			s = s.Blur(0, fs.Field)
			b := mustBlock(t, s, 0)
			if got, _ := b.Get(fs.Field); got != fs.Default {
				t.Errorf("%s.%s: restored %d, want %d", typ, fs.Field, got, fs.Default)
			}
			errs := s.FieldErrors(b.ID)
			if len(errs) != 1 || errs[fs.Field] != fs.Label+" is required" {
				t.Errorf("%s.%s: errors = %v, want one required error", typ, fs.Field, errs)
			}
		}
	}
}

func TestOptionalFieldsClearOnBlur(t *testing.T) {
	s := stateWith(blocks.VedicMultiplyBy12To19)
	s = s.SetField(0, blocks.FieldMultiplier, "25")
	s = s.Blur(0, blocks.FieldMultiplier)
	b := mustBlock(t, s, 0)
	if _, ok := b.Constraints.Get(blocks.FieldMultiplier); ok {
		t.Error("out-of-range optional multiplier should be cleared")
	}
	if s.HasErrors() {
		t.Errorf("unexpected errors: %v", s.FieldErrors(b.ID))
	}

	s = s.SetField(0, blocks.FieldMultiplier, "14")
	s = s.Blur(0, blocks.FieldMultiplier)
	if v, _ := mustBlock(t, s, 0).Constraints.Value(blocks.FieldMultiplier); v != 14 {
		t.Errorf("multiplier = %d, want 14", v)
	}
}

func TestPercentageCrossCheck(t *testing.T) {
	s := stateWith(blocks.Percentage)
	s = s.SetField(0, blocks.FieldPercentageMin, "80")
	s = s.SetField(0, blocks.FieldPercentageMax, "20")

	s, ok := s.ValidateAll()
	if ok {
		t.Fatal("ValidateAll should fail when min > max")
	}
	id := mustBlock(t, s, 0).ID
	if got := s.Error(id, blocks.FieldPercentageMin); got != "Percentage Min cannot be greater than Percentage Max" {
		t.Errorf("percentageMin error = %q", got)
	}

	s = s.SetField(0, blocks.FieldPercentageMax, "90")
	s = s.Blur(0, blocks.FieldPercentageMax)
	if got := s.Error(id, blocks.FieldPercentageMin); got != "" {
		t.Errorf("percentageMin error after fix = %q, want none", got)
	}
}

func TestValidateAll(t *testing.T) {
	s := stateWith(blocks.AddSub, blocks.VedicTables, blocks.SquareRoot)
	if _, ok := s.ValidateAll(); !ok {
		t.Fatal("fresh blocks should validate")
	}

	s = s.SetField(0, blocks.FieldCount, "")
	s = s.SetField(1, blocks.FieldRows, "")
	s = s.SetField(2, blocks.FieldRootDigits, "")

	s, ok := s.ValidateAll()
	if ok {
		t.Fatal("expected validation failure")
	}
	if got := s.Error(mustBlock(t, s, 0).ID, blocks.FieldCount); got != "Questions is required" {
		t.Errorf("count error = %q", got)
	}
	if got := s.Error(mustBlock(t, s, 1).ID, blocks.FieldRows); got != "Rows is required" {
		t.Errorf("tables rows error = %q", got)
	}
	// Other empty fields are left to the service defaults.
	if got := s.Error(mustBlock(t, s, 2).ID, blocks.FieldRootDigits); got != "" {
		t.Errorf("rootDigits error = %q, want none", got)
	}
}

func TestCustomTitlePreserved(t *testing.T) {
	s := stateWith(blocks.Addition)
	s = s.SetTitle(0, "Warm-up")
	s = s.SetField(0, blocks.FieldDigits, "4")
	s = s.SetType(0, blocks.Multiplication)
	s = s.Update(0, Patch{Constraints: blocks.Constraints{blocks.FieldMultiplierDigits: 3}})

	if got := mustBlock(t, s, 0).Title; got != "Warm-up" {
		t.Errorf("Title = %q, want %q", got, "Warm-up")
	}
}

func TestCustomTitleEqualToDerivedStaysCustom(t *testing.T) {
	s := stateWith(blocks.Addition)
	auto := mustBlock(t, s, 0).Title
	s = s.SetTitle(0, auto)
	s = s.SetField(0, blocks.FieldDigits, "5")

	if got := mustBlock(t, s, 0).Title; got != auto {
		t.Errorf("Title = %q, want hand-typed %q kept", got, auto)
	}
}

func TestAutoTitleRegenerates(t *testing.T) {
	s := stateWith(blocks.Addition)
	s = s.SetType(0, blocks.Division)
	s = s.SetField(0, blocks.FieldDividendDigits, "5")
	b := mustBlock(t, s, 0)
	if want := blocks.DeriveTitle(b); b.Title != want {
		t.Errorf("Title = %q, want %q", b.Title, want)
	}

	// Clearing a custom title hands it back to automatic naming.
	s = s.SetTitle(0, "Mine")
	s = s.SetTitle(0, "")
	s = s.SetField(0, blocks.FieldDivisorDigits, "2")
	if got := mustBlock(t, s, 0).Title; got != "Division 5X2" {
		t.Errorf("Title = %q, want %q", got, "Division 5X2")
	}
}

func TestClearedTitleDerivesAtOnce(t *testing.T) {
	s := stateWith(blocks.Addition)
	s = s.SetField(0, blocks.FieldDigits, "3")
	s = s.SetTitle(0, "Mine")
	s = s.SetTitle(0, "")

	b := mustBlock(t, s, 0)
	if want := blocks.DeriveTitle(b); b.Title != want || b.Title == "" {
		t.Errorf("Title = %q, want %q", b.Title, want)
	}
	if b.TitleIsCustom {
		t.Error("a cleared title should be automatic")
	}

	// The combined patch derives from the patched constraints.
	title := ""
	s = s.Update(0, Patch{Title: &title, Constraints: blocks.Constraints{blocks.FieldRows: 6}})
	if got := mustBlock(t, s, 0).Title; got != "Addition 3D 6R" {
		t.Errorf("Title = %q, want %q", got, "Addition 3D 6R")
	}
}

func TestDuplicate(t *testing.T) {
	s := stateWith(blocks.Addition, blocks.GCD)
	s = s.SetTitle(0, "Custom")
	s = s.Duplicate(0)

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	orig, dup := mustBlock(t, s, 0), mustBlock(t, s, 1)
	if orig.ID == dup.ID {
		t.Error("duplicate shares the original id")
	}
	if dup.Title != blocks.DeriveTitle(dup) || dup.TitleIsCustom {
		t.Errorf("duplicate title = %q, want regenerated", dup.Title)
	}
	if mustBlock(t, s, 2).Type != blocks.GCD {
		t.Error("duplicate not inserted directly after the original")
	}

	// Deep copy: editing the duplicate leaves the original alone.
	s = s.SetField(1, blocks.FieldDigits, "7")
	if v, _ := mustBlock(t, s, 0).Constraints.Value(blocks.FieldDigits); v == 7 {
		t.Error("editing the duplicate changed the original")
	}
}

func TestMoveAndReorder(t *testing.T) {
	s := stateWith(blocks.Addition, blocks.Subtraction, blocks.Multiplication)
	order := func(s State) []blocks.OpType {
		var out []blocks.OpType
		for _, b := range s.Blocks() {
			out = append(out, b.Type)
		}
		return out
	}

	if got := order(s.MoveUp(0)); got[0] != blocks.Addition {
		t.Errorf("MoveUp(0) changed order: %v", got)
	}
	if got := order(s.MoveDown(2)); got[2] != blocks.Multiplication {
		t.Errorf("MoveDown(last) changed order: %v", got)
	}
	if got := order(s.MoveDown(0)); got[0] != blocks.Subtraction || got[1] != blocks.Addition {
		t.Errorf("MoveDown(0) = %v", got)
	}

	got := order(s.Reorder(0, 2))
	want := []blocks.OpType{blocks.Subtraction, blocks.Multiplication, blocks.Addition}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Reorder(0,2) = %v, want %v", got, want)
		}
	}
}

func TestErrorsFollowBlockOnReorder(t *testing.T) {
	s := stateWith(blocks.Addition, blocks.Subtraction)
	s = s.SetField(0, blocks.FieldDigits, "50")
	id := mustBlock(t, s, 0).ID

	s = s.MoveDown(0)
	if mustBlock(t, s, 1).ID != id {
		t.Fatal("block did not move")
	}
	if s.Error(id, blocks.FieldDigits) == "" {
		t.Error("error lost after reorder")
	}
	if len(s.FieldErrors(mustBlock(t, s, 0).ID)) != 0 {
		t.Error("error leaked onto the block now at index 0")
	}

	s = s.Remove(1)
	if s.HasErrors() {
		t.Error("errors of removed block remain")
	}
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	s := stateWith(blocks.Addition, blocks.Subtraction)
	snapshot := s.Blocks()

	_ = s.SetField(0, blocks.FieldDigits, "9")
	_ = s.SetType(1, blocks.LCM)
	_ = s.Reorder(0, 1)
	_ = s.Remove(0)
	_ = s.Duplicate(1)
	_, _ = s.SetField(0, blocks.FieldCount, "").ValidateAll()

	after := s.Blocks()
	for i := range snapshot {
		if snapshot[i].Type != after[i].Type || snapshot[i].Title != after[i].Title ||
			snapshot[i].Count != after[i].Count {
			t.Errorf("block %d mutated: %+v -> %+v", i, snapshot[i], after[i])
		}
		if v, _ := after[i].Constraints.Value(blocks.FieldDigits); v == 9 {
			t.Errorf("block %d constraints mutated", i)
		}
	}
	if s.HasErrors() {
		t.Error("receiver gained errors")
	}
}
