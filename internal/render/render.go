// Package render turns a generated question into a display layout. The
// layout is chosen by a fixed sequence of checks; the first that matches
// wins.
package render

import (
	"math"
	"strings"

	"github.com/abhisek/talenthub/internal/paper"
)

// Kind identifies the layout chosen for a question.
type Kind int

const (
	// KindDecimalColumn is a stacked column of decimal-scaled operands.
	KindDecimalColumn Kind = iota
	// KindColumn is a stacked column of whole operands.
	KindColumn
	// KindText shows the service text verbatim.
	KindText
	// KindDecimalProduct shows the service text with a two-decimal answer.
	KindDecimalProduct
	// KindInline is "a op b =" on one line.
	KindInline
)

func (k Kind) String() string {
	switch k {
	case KindDecimalColumn:
		return "decimal-column"
	case KindColumn:
		return "column"
	case KindText:
		return "text"
	case KindDecimalProduct:
		return "decimal-product"
	case KindInline:
		return "inline"
	}
	return "unknown"
}

// Vertical reports whether k stacks its lines in a column.
func (k Kind) Vertical() bool {
	return k == KindDecimalColumn || k == KindColumn
}

// Line is one row of a layout. Operator is empty when the row has none.
type Line struct {
	Operator string
	Value    string
}

func (l Line) String() string {
	if l.Operator == "" {
		return l.Value
	}
	return l.Operator + " " + l.Value
}

// Layout is a rendered question.
type Layout struct {
	Kind       Kind
	Lines      []Line
	Answer     string
	ShowAnswer bool
}

// Options controls rendering.
type Options struct {
	ShowAnswer bool

	// DecimalHeuristic enables sniffing the ×10 decimal encoding from the
	// operands when the question carries no explicit scale.
	DecimalHeuristic bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{DecimalHeuristic: true}
}

const plusMinus = "±"

// defaultDecimalScale is the operand encoding assumed for decimal chains
// that carry no explicit scale.
const defaultDecimalScale = 10

var (
	textOperators = map[string]bool{"√": true, "∛": true, "LCM": true, "GCD": true, "%": true, "²": true, "C": true}
	textMarkers   = []string{"LCM", "GCD", "√", "∛", "% of", "C of", "²"}
)

// Render selects the layout for q.
func Render(q paper.Question, opts Options) Layout {
	l := Layout{ShowAnswer: opts.ShowAnswer}

	switch {
	case q.IsVertical && isDecimalChain(q, opts):
		scale := chainScale(q)
		l.Kind = KindDecimalColumn
		l.Lines = decimalLines(q, scale)
		l.Answer = answerOr(q.Answer, func(v float64) string { return FormatFixed(v, scalePlaces(scale)) })
	case q.IsVertical:
		l.Kind = KindColumn
		l.Lines = columnLines(q)
		l.Answer = answerOr(q.Answer, oneDecimal)
	case isTextQuestion(q):
		l.Kind = KindText
		l.Lines = []Line{{Value: expandText(q.Text)}}
		l.Answer = answerOr(q.Answer, FormatTrimmed)
	case q.Operator == "×" && strings.Contains(q.Text, "."):
		l.Kind = KindDecimalProduct
		l.Lines = []Line{{Value: expandText(q.Text)}}
		l.Answer = answerOr(q.Answer, twoDecimals)
	default:
		l.Kind = KindInline
		l.Lines = []Line{{Value: inlineText(q)}}
		l.Answer = answerOr(q.Answer, twoDecimals)
	}
	return l
}

func oneDecimal(v float64) string  { return FormatFixed(v, 1) }
func twoDecimals(v float64) string { return FormatFixed(v, 2) }

// isDecimalChain reports whether q's operands are decimals sent as
// scaled integers. An explicit scale wins over every other signal.
func isDecimalChain(q paper.Question, opts Options) bool {
	if q.DecimalScale != 0 {
		return q.DecimalScale > 1
	}
	if isPlusMinus(q.Operator) {
		return true
	}
	return opts.DecimalHeuristic && looksDecimalScaled(q)
}

func isPlusMinus(op string) bool {
	if op == plusMinus {
		return true
	}
	if r := []rune(op); len(r) > 0 && r[0] == 0x00B1 {
		return true
	}
	return strings.Contains(op, plusMinus)
}

// looksDecimalScaled is the fallback for questions without a scale: every
// operand a multiple of ten in [10, 9990] and a per-operand operator list.
func looksDecimalScaled(q paper.Question) bool {
	if len(q.Operands) == 0 || len(q.Operators) == 0 {
		return false
	}
	for _, v := range q.Operands {
		if math.Mod(v, 10) != 0 || v < 10 || v > 9990 {
			return false
		}
	}
	return true
}

// chainScale is the divisor for a decimal chain's operands.
func chainScale(q paper.Question) int {
	if q.DecimalScale > 1 {
		return q.DecimalScale
	}
	return defaultDecimalScale
}

// scalePlaces is the number of decimals a scale encodes: 10 is one, 100 is
// two.
func scalePlaces(scale int) int {
	return max(int(math.Round(math.Log10(float64(scale)))), 0)
}

func decimalLines(q paper.Question, scale int) []Line {
	places := scalePlaces(scale)
	lines := make([]Line, len(q.Operands))
	for i, v := range q.Operands {
		lines[i].Value = FormatFixed(v/float64(scale), places)
		if i == 0 {
			continue
		}
		lines[i].Operator = "+"
		if i-1 < len(q.Operators) && q.Operators[i-1] != "" {
			lines[i].Operator = q.Operators[i-1]
		}
	}
	return lines
}

// columnLines places operators for a whole-number column. With a
// per-operand list every operand after the first is prefixed. A single
// subtraction operator repeats on every operand after the first; any
// other single operator appears once, on the last operand.
func columnLines(q paper.Question) []Line {
	lines := make([]Line, len(q.Operands))
	last := len(q.Operands) - 1
	for i, v := range q.Operands {
		lines[i].Value = FormatNumber(v)
		switch {
		case len(q.Operators) > 0:
			if i > 0 && i-1 < len(q.Operators) {
				lines[i].Operator = q.Operators[i-1]
			}
		case q.Operator == "-":
			if i > 0 {
				lines[i].Operator = q.Operator
			}
		case i == last:
			lines[i].Operator = q.Operator
		}
	}
	return lines
}

func isTextQuestion(q paper.Question) bool {
	if textOperators[q.Operator] || len(q.Operands) == 1 {
		return true
	}
	if q.Operator == "÷" && strings.Contains(q.Text, "÷") && !strings.Contains(q.Text, ".") {
		return true
	}
	for _, m := range textMarkers {
		if strings.Contains(q.Text, m) {
			return true
		}
	}
	return false
}

// expandText rewrites every scientific-notation number in service text as
// plain digits.
func expandText(s string) string {
	if !strings.ContainsAny(s, "eE") {
		return s
	}
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = expandScientific(f)
	}
	return strings.Join(fields, " ")
}

func inlineText(q paper.Question) string {
	if len(q.Operands) >= 2 {
		return FormatNumber(q.Operands[0]) + " " + q.Operator + " " + FormatNumber(q.Operands[1]) + " ="
	}
	if q.Text != "" {
		return q.Text
	}
	return "?"
}

// String renders l as plain text. Columns are right-aligned and closed by
// a rule; the answer row is blank when answers are hidden.
func (l Layout) String() string {
	if !l.Kind.Vertical() {
		line := ""
		if len(l.Lines) > 0 {
			line = l.Lines[0].String()
		}
		if l.ShowAnswer {
			return line + "  " + l.Answer
		}
		return line
	}

	rows := make([]string, len(l.Lines))
	width := 0
	for i, ln := range l.Lines {
		rows[i] = ln.String()
		width = max(width, len([]rune(rows[i])))
	}
	if l.ShowAnswer {
		width = max(width, len([]rune(l.Answer)))
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(padLeft(r, width))
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("─", width))
	b.WriteByte('\n')
	if l.ShowAnswer {
		b.WriteString(padLeft(l.Answer, width))
	} else {
		b.WriteString(strings.Repeat(" ", width))
	}
	return b.String()
}

// Inline renders l on a single line without its answer, so column
// questions read "12 + 7 - 3".
func (l Layout) Inline() string {
	parts := make([]string, 0, len(l.Lines))
	for _, ln := range l.Lines {
		parts = append(parts, ln.String())
	}
	return strings.Join(parts, " ")
}

func padLeft(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
