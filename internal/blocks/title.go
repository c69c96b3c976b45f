package blocks

import (
	"fmt"
	"strconv"
)

// DefaultSectionTitle is used for types without a title template.
const DefaultSectionTitle = "Section"

var chainPrefix = map[OpType]string{
	Addition:           "Addition",
	Subtraction:        "Subtraction",
	AddSub:             "Add/Sub",
	IntegerAddSub:      "Integer Add/Sub",
	DecimalAddSub:      "Decimal Add/Sub",
	DirectAddSub:       "Direct Add/Sub",
	SmallFriendsAddSub: "Small Friends Add/Sub",
	BigFriendsAddSub:   "Big Friends Add/Sub",
}

var fixedOperandPrefix = map[OpType]string{
	VedicMultiplyBy11:      "Multiply by 11",
	VedicMultiplyBy101:     "Multiply by 101",
	VedicMultiplyBy12To19:  "Multiply by 12-19",
	VedicMultiplyBy21To91:  "Multiply by 21-91",
	VedicMultiplyBy2:       "Multiply by 2",
	VedicMultiplyBy4:       "Multiply by 4",
	VedicMultiplyBy6:       "Multiply by 6",
	VedicDivideBy2:         "Divide by 2",
	VedicDivideBy4:         "Divide by 4",
	VedicDivideSingleDigit: "Divide Single Digit",
	VedicDivideBy11:        "Divide by 11",
}

// DeriveTitle returns the automatic section title for b. It never fails:
// types without a template get DefaultSectionTitle.
func DeriveTitle(b Block) string {
	v := Resolve(b.Type, b.Constraints)

	switch v := v.(type) {
	case Chain:
		return fmt.Sprintf("%s %dD %dR", chainPrefix[b.Type], v.Digits, v.Rows)
	case Product:
		return fmt.Sprintf("Multiplication %dX%d", v.MultiplicandDigits, v.MultiplierDigits)
	case Quotient:
		return fmt.Sprintf("Division %dX%d", v.DividendDigits, v.DivisorDigits)
	case Root:
		if b.Type == CubeRoot {
			return fmt.Sprintf("Cube Root (%d digits)", v.Digits)
		}
		return fmt.Sprintf("Square Root (%d digits)", v.Digits)
	case DecimalProduct:
		mult := strconv.Itoa(v.MultiplierDigits)
		if v.MultiplierDigits == 0 {
			mult = "Whole"
		}
		return fmt.Sprintf("Decimal Multiplication (%d×%s)", v.MultiplicandDigits, mult)
	case DecimalQuotient:
		return fmt.Sprintf("Decimal Division (%d÷%d)", v.DividendDigits, v.DivisorDigits)
	case NumberPair:
		name := "LCM"
		if b.Type == GCD {
			name = "GCD"
		}
		return fmt.Sprintf("%s (%d×%d digits)", name, v.FirstDigits, v.SecondDigits)
	case PercentRange:
		return fmt.Sprintf("Percentage (%d-%d%%, %d digits)", v.Min, v.Max, v.NumberDigits)
	case FixedOperand:
		return fmt.Sprintf("%s (%dD)", fixedOperandPrefix[b.Type], v.Digits)
	case Complement:
		if b.Type == VedicSubtractionComplement {
			return fmt.Sprintf("Subtraction Complement (base %d)", v.Base)
		}
		return fmt.Sprintf("Subtraction (base %d)", v.Base)
	case Addends:
		return fmt.Sprintf("Addition (%dD + %dD)", v.FirstDigits, v.SecondDigits)
	case Table:
		if v.TableNumber == 0 {
			return "Tables (10-99)"
		}
		return fmt.Sprintf("Tables (%d)", v.TableNumber)
	}

	switch b.Type {
	case VedicSpecialProducts100:
		return "Special Products (Base 100)"
	case VedicSpecialProducts50:
		return "Special Products (Base 50)"
	case VedicSquaresBase10:
		return "Squares (Base 10)"
	case VedicSquaresBase100:
		return "Squares (Base 100)"
	case VedicSquaresBase1000:
		return "Squares (Base 1000)"
	}
	return DefaultSectionTitle
}

// IsAutoTitle reports whether b's title is still managed automatically.
func IsAutoTitle(b Block) bool {
	return !b.TitleIsCustom || b.Title == ""
}

// AdoptTitle sets TitleIsCustom for a block whose origin did not carry the
// flag, such as a preset or a paper file. A non-empty title that differs
// from the derived one is treated as custom; an empty title is filled in.
func AdoptTitle(b Block) Block {
	derived := DeriveTitle(b)
	if b.Title == "" {
		b.Title = derived
		b.TitleIsCustom = false
		return b
	}
	b.TitleIsCustom = b.Title != derived
	return b
}
