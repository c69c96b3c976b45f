// Package paper defines the paper configuration exchanged with the
// generation service and the questions it returns.
package paper

import "github.com/abhisek/talenthub/internal/blocks"

// Orientation is the page orientation used by the PDF renderer.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

const (
	// DefaultTitle is used when the user leaves the paper title blank.
	DefaultTitle = "Math Practice Paper"

	// DefaultTotalQuestions is sent with every preview request.
	DefaultTotalQuestions = "20"
)

// Config is a named, leveled collection of blocks.
type Config struct {
	Level          Level          `json:"level" yaml:"level"`
	Title          string         `json:"title" yaml:"title"`
	TotalQuestions string         `json:"totalQuestions" yaml:"totalQuestions,omitempty"`
	Blocks         []blocks.Block `json:"blocks" yaml:"blocks"`
	Orientation    Orientation    `json:"orientation" yaml:"orientation,omitempty"`
}

// Question is one generated question. It is never modified after it is
// received.
type Question struct {
	// ID is the paper-scoped ordinal used to key answers.
	ID int `json:"id"`

	// Text is the pre-formatted fallback for irregular layouts such as
	// roots, LCM/GCD and percentages.
	Text string `json:"text"`

	// Operands are interpreted per type. In add/sub chains Operands[0] is
	// unsigned and Operands[i] pairs with Operators[i-1].
	Operands  []float64 `json:"operands"`
	Operator  string    `json:"operator"`
	Operators []string  `json:"operators,omitempty"`

	Answer float64 `json:"answer"`

	// IsVertical is the service's layout hint.
	IsVertical bool `json:"isVertical"`

	// DecimalScale tags the operand encoding: 10 means each operand is the
	// decimal value times ten, 100 times a hundred. Zero means the service
	// did not say.
	DecimalScale int `json:"decimalScale,omitempty"`
}

// GeneratedBlock pairs the originating block with its questions.
type GeneratedBlock struct {
	Config    blocks.Block `json:"config"`
	Questions []Question   `json:"questions"`
}

// PreviewResponse is the service's answer to a preview request.
type PreviewResponse struct {
	Blocks []GeneratedBlock `json:"blocks"`
	Seed   int64            `json:"seed"`
}

// Questions flattens every question of the response in paper order.
func (r PreviewResponse) Questions() []Question {
	return Flatten(r.Blocks)
}

// Flatten returns every question of gbs in paper order.
func Flatten(gbs []GeneratedBlock) []Question {
	var out []Question
	for _, gb := range gbs {
		out = append(out, gb.Questions...)
	}
	return out
}

// PDFRequest is the body of a PDF export. Passing the previewed blocks and
// seed makes the PDF match what the user already saw.
type PDFRequest struct {
	Config          Config           `json:"config"`
	WithAnswers     bool             `json:"withAnswers"`
	Seed            *int64           `json:"seed,omitempty"`
	GeneratedBlocks []GeneratedBlock `json:"generatedBlocks,omitempty"`
	AnswersOnly     bool             `json:"answersOnly"`
}
