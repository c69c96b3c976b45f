package blocks

import (
	"encoding/json"
	"math"
)

// Field names a configurable block value. The string form is the wire key
// used by the generation service.
type Field string

const (
	FieldCount              Field = "count"
	FieldDigits             Field = "digits"
	FieldRows               Field = "rows"
	FieldMultiplicandDigits Field = "multiplicandDigits"
	FieldMultiplierDigits   Field = "multiplierDigits"
	FieldDividendDigits     Field = "dividendDigits"
	FieldDivisorDigits      Field = "divisorDigits"
	FieldRootDigits         Field = "rootDigits"
	FieldPercentageMin      Field = "percentageMin"
	FieldPercentageMax      Field = "percentageMax"
	FieldNumberDigits       Field = "numberDigits"
	FieldBase               Field = "base"
	FieldFirstDigits        Field = "firstDigits"
	FieldSecondDigits       Field = "secondDigits"
	FieldMultiplier         Field = "multiplier"
	FieldMultiplierRange    Field = "multiplierRange"
	FieldDivisor            Field = "divisor"
	FieldTableNumber        Field = "tableNumber"
)

var knownFields = map[Field]bool{
	FieldCount: true, FieldDigits: true, FieldRows: true,
	FieldMultiplicandDigits: true, FieldMultiplierDigits: true,
	FieldDividendDigits: true, FieldDivisorDigits: true, FieldRootDigits: true,
	FieldPercentageMin: true, FieldPercentageMax: true, FieldNumberDigits: true,
	FieldBase: true, FieldFirstDigits: true, FieldSecondDigits: true,
	FieldMultiplier: true, FieldMultiplierRange: true, FieldDivisor: true,
	FieldTableNumber: true,
}

// Known reports whether f is a recognized field name.
func (f Field) Known() bool {
	return knownFields[f]
}

// Empty is the sentinel stored while an input box has been cleared but not
// yet blurred.
const Empty = -1

// Constraints is the raw constraint record sent to the generation service.
// Absent keys are unset. Keys that do not apply to a block's type are
// ignored by Resolve and by the generator.
type Constraints map[Field]int

// Get returns the value of f and whether it is set. The Empty sentinel
// counts as set.
func (c Constraints) Get(f Field) (int, bool) {
	v, ok := c[f]
	return v, ok
}

// Value returns the value of f if it is set and not Empty.
func (c Constraints) Value(f Field) (int, bool) {
	v, ok := c[f]
	if !ok || v == Empty {
		return 0, false
	}
	return v, true
}

// Clone returns a deep copy of c.
func (c Constraints) Clone() Constraints {
	out := make(Constraints, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// UnmarshalJSON copies recognized numeric keys field by field. Nulls,
// booleans and unknown keys are dropped and stay unset.
func (c *Constraints) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Constraints, len(raw))
	for k, v := range raw {
		f := Field(k)
		n, ok := v.(float64)
		if !ok || f == FieldCount || !f.Known() {
			continue
		}
		out[f] = int(math.Round(n))
	}
	*c = out
	return nil
}
