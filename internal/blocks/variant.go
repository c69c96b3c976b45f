package blocks

// Variant is the typed view of a block's constraints. Each operation type
// maps to exactly one variant shape; Resolve performs the mapping.
type Variant interface {
	variant()
}

// Chain configures the add/sub family: Rows numbers of Digits digits each.
type Chain struct {
	Digits int
	Rows   int
}

// Product configures whole-number multiplication.
type Product struct {
	MultiplicandDigits int
	MultiplierDigits   int
}

// Quotient configures whole-number division.
type Quotient struct {
	DividendDigits int
	DivisorDigits  int
}

// Root configures square and cube roots by the digit count of the radicand.
type Root struct {
	Digits int
}

// DecimalProduct configures decimal multiplication. A MultiplierDigits of 0
// means a whole-number multiplier.
type DecimalProduct struct {
	MultiplicandDigits int
	MultiplierDigits   int
}

// DecimalQuotient configures decimal division.
type DecimalQuotient struct {
	DividendDigits int
	DivisorDigits  int
}

// NumberPair configures LCM and GCD.
type NumberPair struct {
	FirstDigits  int
	SecondDigits int
}

// PercentRange configures percentage questions.
type PercentRange struct {
	Min          int
	Max          int
	NumberDigits int
}

// FixedOperand configures the Vedic multiply/divide-by-constant types.
// Operand is the optional pinned multiplier or divisor, 0 when the
// generator may choose.
type FixedOperand struct {
	Digits  int
	Operand int
}

// Complement configures the Vedic subtraction types.
type Complement struct {
	Base int
}

// Addends configures Vedic addition.
type Addends struct {
	FirstDigits  int
	SecondDigits int
}

// Table configures multiplication tables. TableNumber is 0 when the
// generator picks tables in the 10-99 range.
type Table struct {
	Rows        int
	TableNumber int
}

// Fixed is used by types that take no constraints.
type Fixed struct{}

func (Chain) variant()           {}
func (Product) variant()         {}
func (Quotient) variant()        {}
func (Root) variant()            {}
func (DecimalProduct) variant()  {}
func (DecimalQuotient) variant() {}
func (NumberPair) variant()      {}
func (PercentRange) variant()    {}
func (FixedOperand) variant()    {}
func (Complement) variant()      {}
func (Addends) variant()         {}
func (Table) variant()           {}
func (Fixed) variant()           {}

// Resolve maps raw constraints onto the variant for t, filling unset
// fields from the registry. Keys irrelevant to t are ignored. Unknown
// types resolve to Fixed.
func Resolve(t OpType, c Constraints) Variant {
	spec, ok := Lookup(t)
	if !ok {
		return Fixed{}
	}
	r := resolver{spec: spec, c: c}

	if t.IsAddSubFamily() {
		return Chain{Digits: r.truthy(FieldDigits), Rows: r.truthy(FieldRows)}
	}

	switch t {
	case Multiplication:
		return Product{
			MultiplicandDigits: r.truthyOr(FieldMultiplicandDigits, FieldDigits),
			MultiplierDigits:   r.truthyOr(FieldMultiplierDigits, FieldDigits),
		}
	case Division:
		return Quotient{
			DividendDigits: r.truthyOr(FieldDividendDigits, FieldDigits),
			DivisorDigits:  r.truthyOr(FieldDivisorDigits, FieldDigits),
		}
	case SquareRoot, CubeRoot:
		return Root{Digits: r.value(FieldRootDigits)}
	case DecimalMultiplication:
		return DecimalProduct{
			MultiplicandDigits: r.truthy(FieldMultiplicandDigits),
			MultiplierDigits:   r.value(FieldMultiplierDigits),
		}
	case DecimalDivision:
		return DecimalQuotient{
			DividendDigits: r.truthy(FieldMultiplicandDigits),
			DivisorDigits:  r.truthy(FieldMultiplierDigits),
		}
	case LCM, GCD:
		return NumberPair{
			FirstDigits:  r.value(FieldMultiplicandDigits),
			SecondDigits: r.value(FieldMultiplierDigits),
		}
	case Percentage:
		return PercentRange{
			Min:          r.value(FieldPercentageMin),
			Max:          r.value(FieldPercentageMax),
			NumberDigits: r.value(FieldNumberDigits),
		}
	case VedicMultiplyBy12To19:
		return FixedOperand{Digits: r.value(FieldDigits), Operand: r.value(FieldMultiplier)}
	case VedicMultiplyBy21To91:
		return FixedOperand{Digits: r.value(FieldDigits), Operand: r.value(FieldMultiplierRange)}
	case VedicDivideSingleDigit:
		return FixedOperand{Digits: r.value(FieldDigits), Operand: r.value(FieldDivisor)}
	case VedicMultiplyBy11, VedicMultiplyBy101, VedicMultiplyBy2, VedicMultiplyBy4,
		VedicMultiplyBy6, VedicDivideBy2, VedicDivideBy4, VedicDivideBy11:
		return FixedOperand{Digits: r.value(FieldDigits)}
	case VedicSubtractionComplement, VedicSubtractionNormal:
		return Complement{Base: r.value(FieldBase)}
	case VedicAddition:
		return Addends{FirstDigits: r.value(FieldFirstDigits), SecondDigits: r.value(FieldSecondDigits)}
	case VedicTables:
		return Table{Rows: r.value(FieldRows), TableNumber: r.value(FieldTableNumber)}
	}
	return Fixed{}
}

type resolver struct {
	spec Spec
	c    Constraints
}

func (r resolver) def(f Field) int {
	d, _ := r.spec.Default(f)
	return d
}

// value returns the stored value, keeping zero, or the default when unset.
func (r resolver) value(f Field) int {
	if v, ok := r.c.Value(f); ok {
		return v
	}
	return r.def(f)
}

// truthy treats zero like unset.
func (r resolver) truthy(f Field) int {
	if v, ok := r.c.Value(f); ok && v != 0 {
		return v
	}
	return r.def(f)
}

// truthyOr consults fallback before the default of f.
func (r resolver) truthyOr(f, fallback Field) int {
	if v, ok := r.c.Value(f); ok && v != 0 {
		return v
	}
	if v, ok := r.c.Value(fallback); ok && v != 0 {
		return v
	}
	return r.def(f)
}
