package blocks

// FieldSpec describes one editable value of a block type.
type FieldSpec struct {
	Field Field
	Label string
	Min   int
	Max   int

	// Default is restored when the field is blurred empty and is used by
	// DeriveTitle when the field is unset. Optional fields have no default.
	Default int

	// Optional fields may stay unset. Out-of-range values are dropped
	// rather than clamped.
	Optional bool
}

// HasDefault reports whether the field has a documented default.
func (f FieldSpec) HasDefault() bool {
	return !f.Optional
}

// InRange reports whether v lies within [Min, Max].
func (f FieldSpec) InRange(v int) bool {
	return v >= f.Min && v <= f.Max
}

// Clamp forces v into [Min, Max].
func (f FieldSpec) Clamp(v int) int {
	if v < f.Min {
		return f.Min
	}
	if v > f.Max {
		return f.Max
	}
	return v
}

// Spec is the registry entry for a single operation type.
type Spec struct {
	Type OpType
	Name string

	// Fields lists the constraint fields in form order. Count is not
	// included; see CountSpec.
	Fields []FieldSpec

	// Resets holds the values forced onto the block when the user switches
	// to this type, overriding anything carried over from the old type.
	Resets Constraints
}

// Field returns the spec for f, including FieldCount for types that use it.
func (s Spec) Field(f Field) (FieldSpec, bool) {
	if f == FieldCount {
		if s.Type.UsesCount() {
			return CountSpec, true
		}
		return FieldSpec{}, false
	}
	for _, fs := range s.Fields {
		if fs.Field == f {
			return fs, true
		}
	}
	return FieldSpec{}, false
}

// Editable returns every field a user can edit for the type, count first.
func (s Spec) Editable() []FieldSpec {
	out := make([]FieldSpec, 0, len(s.Fields)+1)
	if s.Type.UsesCount() {
		out = append(out, CountSpec)
	}
	return append(out, s.Fields...)
}

// Default returns the default value for f, or false if f has none.
func (s Spec) Default(f Field) (int, bool) {
	fs, ok := s.Field(f)
	if !ok || !fs.HasDefault() {
		return 0, false
	}
	return fs.Default, true
}

// InitialCount is the question count of a freshly added block.
const InitialCount = 10

// CountSpec bounds the per-block question count.
var CountSpec = FieldSpec{Field: FieldCount, Label: "Questions", Min: 1, Max: 200, Default: 1}

// Lookup returns the registry entry for t.
func Lookup(t OpType) (Spec, bool) {
	s, ok := registry[t]
	return s, ok
}

func addSub(t OpType, name string, digits int) Spec {
	return Spec{
		Type: t,
		Name: name,
		Fields: []FieldSpec{
			{Field: FieldDigits, Label: "Digits", Min: 1, Max: 10, Default: digits},
			{Field: FieldRows, Label: "Rows", Min: 2, Max: 30, Default: 3},
		},
	}
}

func vedicDigits(t OpType, name string, def int, extra ...FieldSpec) Spec {
	fields := []FieldSpec{{Field: FieldDigits, Label: "Digits", Min: 2, Max: 30, Default: def}}
	return Spec{Type: t, Name: name, Fields: append(fields, extra...)}
}

func vedicBase(t OpType, name string) Spec {
	return Spec{
		Type:   t,
		Name:   name,
		Fields: []FieldSpec{{Field: FieldBase, Label: "Base", Min: 1, Max: 1000000, Default: 100}},
	}
}

func twoNumbers(t OpType, name string, first, second int) Spec {
	return Spec{
		Type: t,
		Name: name,
		Fields: []FieldSpec{
			{Field: FieldMultiplicandDigits, Label: "First Number Digits", Min: 1, Max: 10, Default: first},
			{Field: FieldMultiplierDigits, Label: "Second Number Digits", Min: 1, Max: 10, Default: second},
		},
		Resets: Constraints{FieldMultiplicandDigits: first, FieldMultiplierDigits: second},
	}
}

func root(t OpType, name string, def int) Spec {
	return Spec{
		Type:   t,
		Name:   name,
		Fields: []FieldSpec{{Field: FieldRootDigits, Label: "Root Digits", Min: 1, Max: 30, Default: def}},
		Resets: Constraints{FieldRootDigits: def},
	}
}

var registry = func() map[OpType]Spec {
	specs := []Spec{
		addSub(Addition, "Addition", 2),
		addSub(Subtraction, "Subtraction", 2),
		addSub(AddSub, "Add/Sub", 2),
		addSub(IntegerAddSub, "Integer Add/Sub", 2),
		addSub(DecimalAddSub, "Decimal Add/Sub", 2),
		addSub(DirectAddSub, "Direct Add/Sub", 1),
		addSub(SmallFriendsAddSub, "Small Friends Add/Sub", 1),
		addSub(BigFriendsAddSub, "Big Friends Add/Sub", 1),
		{
			Type: Multiplication,
			Name: "Multiplication",
			Fields: []FieldSpec{
				{Field: FieldMultiplicandDigits, Label: "Multiplicand Digits", Min: 1, Max: 20, Default: 2},
				{Field: FieldMultiplierDigits, Label: "Multiplier Digits", Min: 1, Max: 20, Default: 1},
			},
		},
		{
			Type: Division,
			Name: "Division",
			Fields: []FieldSpec{
				{Field: FieldDividendDigits, Label: "Dividend Digits", Min: 1, Max: 20, Default: 2},
				{Field: FieldDivisorDigits, Label: "Divisor Digits", Min: 1, Max: 20, Default: 1},
			},
		},
		root(SquareRoot, "Square Root", 4),
		root(CubeRoot, "Cube Root", 5),
		{
			Type: DecimalMultiplication,
			Name: "Decimal Multiplication",
			Fields: []FieldSpec{
				{Field: FieldMultiplicandDigits, Label: "Multiplicand Digits (Before Decimal)", Min: 1, Max: 20, Default: 2},
				{Field: FieldMultiplierDigits, Label: "Multiplier Digits", Min: 0, Max: 20, Default: 1},
			},
		},
		{
			Type: DecimalDivision,
			Name: "Decimal Division",
			Fields: []FieldSpec{
				{Field: FieldMultiplicandDigits, Label: "Dividend Digits", Min: 1, Max: 20, Default: 2},
				{Field: FieldMultiplierDigits, Label: "Divisor Digits", Min: 1, Max: 20, Default: 1},
			},
		},
		twoNumbers(LCM, "LCM", 2, 2),
		twoNumbers(GCD, "GCD", 3, 2),
		{
			Type: Percentage,
			Name: "Percentage (%)",
			Fields: []FieldSpec{
				{Field: FieldPercentageMin, Label: "Percentage Min", Min: 1, Max: 100, Default: 1},
				{Field: FieldPercentageMax, Label: "Percentage Max", Min: 1, Max: 100, Default: 100},
				{Field: FieldNumberDigits, Label: "Number Digits", Min: 1, Max: 10, Default: 4},
			},
			Resets: Constraints{FieldNumberDigits: 4},
		},

		vedicDigits(VedicMultiplyBy11, "Multiply by 11", 2),
		vedicDigits(VedicMultiplyBy101, "Multiply by 101", 2),
		vedicBase(VedicSubtractionComplement, "Subtraction (Complements)"),
		vedicBase(VedicSubtractionNormal, "Subtraction (Normal)"),
		vedicDigits(VedicMultiplyBy12To19, "Multiply by 12-19", 2,
			FieldSpec{Field: FieldMultiplier, Label: "Multiplier", Min: 12, Max: 19, Optional: true}),
		{Type: VedicSpecialProducts100, Name: "Special Products (Base 100)"},
		{Type: VedicSpecialProducts50, Name: "Special Products (Base 50)"},
		vedicDigits(VedicMultiplyBy21To91, "Multiply by 21-91", 2,
			FieldSpec{Field: FieldMultiplierRange, Label: "Multiplier", Min: 21, Max: 91, Optional: true}),
		{
			Type: VedicAddition,
			Name: "Addition",
			Fields: []FieldSpec{
				{Field: FieldFirstDigits, Label: "First Number Digits", Min: 1, Max: 30, Default: 2},
				{Field: FieldSecondDigits, Label: "Second Number Digits", Min: 1, Max: 30, Default: 2},
			},
		},
		vedicDigits(VedicMultiplyBy2, "Multiply by 2", 2),
		vedicDigits(VedicMultiplyBy4, "Multiply by 4", 2),
		vedicDigits(VedicDivideBy2, "Divide by 2", 2),
		vedicDigits(VedicDivideBy4, "Divide by 4", 2),
		vedicDigits(VedicDivideSingleDigit, "Divide Single Digit", 2,
			FieldSpec{Field: FieldDivisor, Label: "Divisor", Min: 2, Max: 9, Optional: true}),
		vedicDigits(VedicMultiplyBy6, "Multiply by 6", 2),
		{
			Type:   VedicDivideBy11,
			Name:   "Divide by 11",
			Fields: []FieldSpec{{Field: FieldDigits, Label: "Digits", Min: 2, Max: 30, Default: 3}},
			Resets: Constraints{FieldDigits: 3},
		},
		{Type: VedicSquaresBase10, Name: "Squares (Base 10)"},
		{Type: VedicSquaresBase100, Name: "Squares (Base 100)"},
		{Type: VedicSquaresBase1000, Name: "Squares (Base 1000)"},
		{
			Type: VedicTables,
			Name: "Tables",
			Fields: []FieldSpec{
				{Field: FieldRows, Label: "Rows", Min: 2, Max: 100, Default: 10},
				{Field: FieldTableNumber, Label: "Table Number", Min: 1, Max: 99, Optional: true},
			},
			Resets: Constraints{FieldRows: 10},
		},
	}

	m := make(map[OpType]Spec, len(specs))
	for _, s := range specs {
		m[s.Type] = s
	}
	return m
}()
