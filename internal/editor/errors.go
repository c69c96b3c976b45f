package editor

import (
	"fmt"

	"github.com/abhisek/talenthub/internal/blocks"
)

// Errors holds field error messages keyed by block ID, then field. Keys
// follow the block across reorders.
type Errors map[string]map[blocks.Field]string

// with returns a copy of e with the message for (id, f) set, or removed
// when msg is empty.
func (e Errors) with(id string, f blocks.Field, msg string) Errors {
	if msg == "" && e[id][f] == "" {
		return e
	}
	out := make(Errors, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	inner := make(map[blocks.Field]string, len(e[id])+1)
	for k, v := range e[id] {
		inner[k] = v
	}
	if msg == "" {
		delete(inner, f)
	} else {
		inner[f] = msg
	}
	if len(inner) == 0 {
		delete(out, id)
	} else {
		out[id] = inner
	}
	return out
}

// without returns a copy of e with every error for id removed.
func (e Errors) without(id string) Errors {
	if _, ok := e[id]; !ok {
		return e
	}
	out := make(Errors, len(e))
	for k, v := range e {
		if k != id {
			out[k] = v
		}
	}
	return out
}

// Messages used by the validator.
const (
	msgPercentageOrder = "Percentage Min cannot be greater than Percentage Max"
)

func requiredMessage(fs blocks.FieldSpec) string {
	return fmt.Sprintf("%s is required", fs.Label)
}

// rangeMessage returns the bound error for v, or "" when v is in range.
func rangeMessage(fs blocks.FieldSpec, v int) string {
	switch {
	case v < fs.Min:
		return fmt.Sprintf("Minimum value for %s is %d", fs.Label, fs.Min)
	case v > fs.Max:
		return fmt.Sprintf("Maximum value for %s is %d", fs.Label, fs.Max)
	}
	return ""
}
