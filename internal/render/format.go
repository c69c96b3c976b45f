package render

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// maxSafeInteger is the largest integer that survives a round trip through
// a float64 exactly.
const maxSafeInteger = 1<<53 - 1

var scientificPattern = regexp.MustCompile(`^(-?)([\d.]+)[eE]([+-]?\d+)$`)

// FormatNumber renders v without ever using scientific notation. Integers
// get no decimals; large values are rounded to whole numbers.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return strconv.FormatFloat(v, 'f', -1, 64)
	case v == math.Trunc(v) && math.Abs(v) < maxSafeInteger:
		return strconv.FormatFloat(v, 'f', 0, 64)
	case math.Abs(v) >= 1e6:
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// expandScientific rewrites a number already in scientific notation, such
// as "1.5e+21", as plain fixed-point digits. Other input is returned as is.
func expandScientific(s string) string {
	m := scientificPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s
	}
	sign, mantissa := m[1], m[2]
	exp, err := strconv.Atoi(m[3])
	if err != nil {
		return s
	}
	intPart, decPart, _ := strings.Cut(mantissa, ".")

	if exp >= 0 {
		if exp >= len(decPart) {
			return sign + intPart + decPart + strings.Repeat("0", exp-len(decPart))
		}
		return sign + intPart + decPart[:exp] + "." + decPart[exp:]
	}
	digits := strings.TrimLeft(intPart, "0") + decPart
	return sign + "0." + strings.Repeat("0", -exp-1) + digits
}

// FormatFixed renders v with exactly n decimals.
func FormatFixed(v float64, n int) string {
	return strconv.FormatFloat(v, 'f', n, 64)
}

// FormatTrimmed renders v with at most two decimals, dropping trailing
// zeros and a bare decimal point.
func FormatTrimmed(v float64) string {
	s := FormatFixed(v, 2)
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

// isFractional reports whether v has a non-zero fractional part.
func isFractional(v float64) bool {
	return v != math.Trunc(v)
}

// answerOr formats fractional answers with frac and whole ones with
// FormatNumber.
func answerOr(v float64, frac func(float64) string) string {
	if isFractional(v) {
		return frac(v)
	}
	return FormatNumber(v)
}
