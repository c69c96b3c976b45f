package blocks

import "testing"

func TestRegistry_AllTypesRegistered(t *testing.T) {
	types := AllTypes()
	if len(types) != 37 {
		t.Errorf("len(AllTypes()) = %d, want 37", len(types))
	}
	seen := make(map[OpType]bool)
	for _, typ := range types {
		if seen[typ] {
			t.Errorf("duplicate type %s", typ)
		}
		seen[typ] = true
		if !typ.Valid() {
			t.Errorf("%s is not registered", typ)
		}
	}
	if OpType("bogus").Valid() {
		t.Error("bogus type reported valid")
	}
}

func TestRegistry_Ranges(t *testing.T) {
	tests := []struct {
		typ      OpType
		field    Field
		min, max int
		def      int
	}{
		{Addition, FieldCount, 1, 200, 1},
		{VedicTables, FieldRows, 2, 100, 10},
		{AddSub, FieldDigits, 1, 10, 2},
		{AddSub, FieldRows, 2, 30, 3},
		{Multiplication, FieldMultiplicandDigits, 1, 20, 2},
		{Division, FieldDivisorDigits, 1, 20, 1},
		{DecimalMultiplication, FieldMultiplierDigits, 0, 20, 1},
		{SquareRoot, FieldRootDigits, 1, 30, 4},
		{CubeRoot, FieldRootDigits, 1, 30, 5},
		{LCM, FieldMultiplicandDigits, 1, 10, 2},
		{GCD, FieldMultiplicandDigits, 1, 10, 3},
		{Percentage, FieldPercentageMax, 1, 100, 100},
		{Percentage, FieldNumberDigits, 1, 10, 4},
		{VedicMultiplyBy11, FieldDigits, 2, 30, 2},
		{VedicDivideBy11, FieldDigits, 2, 30, 3},
	}

	for _, tc := range tests {
		spec, ok := Lookup(tc.typ)
		if !ok {
			t.Fatalf("Lookup(%s) missing", tc.typ)
		}
		fs, ok := spec.Field(tc.field)
		if !ok {
			t.Errorf("%s has no field %s", tc.typ, tc.field)
			continue
		}
		if fs.Min != tc.min || fs.Max != tc.max || fs.Default != tc.def {
			t.Errorf("%s.%s = [%d,%d] default %d, want [%d,%d] default %d",
				tc.typ, tc.field, fs.Min, fs.Max, fs.Default, tc.min, tc.max, tc.def)
		}
	}
}

func TestRegistry_TablesHaveNoCount(t *testing.T) {
	spec, _ := Lookup(VedicTables)
	if _, ok := spec.Field(FieldCount); ok {
		t.Error("vedic_tables should not expose count")
	}
	if got := spec.Editable()[0].Field; got != FieldRows {
		t.Errorf("first editable field = %s, want rows", got)
	}
}

func TestNew_FillsDefaults(t *testing.T) {
	b := New(GCD)
	if b.ID == "" {
		t.Error("expected an id")
	}
	if b.Count != InitialCount {
		t.Errorf("Count = %d, want %d", b.Count, InitialCount)
	}
	if v, _ := b.Constraints.Value(FieldMultiplicandDigits); v != 3 {
		t.Errorf("multiplicandDigits = %d, want 3", v)
	}
	if b.Title != "GCD (3×2 digits)" {
		t.Errorf("Title = %q", b.Title)
	}

	// Optional fields stay unset.
	b = New(VedicDivideSingleDigit)
	if _, ok := b.Constraints.Get(FieldDivisor); ok {
		t.Error("optional divisor should not be set")
	}
}

func TestResolve_UnknownType(t *testing.T) {
	if _, ok := Resolve(OpType("nope"), Constraints{FieldDigits: 3}).(Fixed); !ok {
		t.Error("unknown type should resolve to Fixed")
	}
}

func TestResolve_IgnoresIrrelevantKeys(t *testing.T) {
	v := Resolve(SquareRoot, Constraints{FieldDigits: 9, FieldRootDigits: 6})
	r, ok := v.(Root)
	if !ok {
		t.Fatalf("Resolve(square_root) = %T, want Root", v)
	}
	if r.Digits != 6 {
		t.Errorf("Root.Digits = %d, want 6", r.Digits)
	}
}
