package editor

import "github.com/abhisek/talenthub/internal/blocks"

// validateBlock returns every error found on b. Unset and Empty fields are
// allowed, since the service falls back to its own defaults, except for
// the count (or the rows of a table), which must always be concrete.
func validateBlock(b blocks.Block) map[blocks.Field]string {
	found := map[blocks.Field]string{}
	spec, ok := blocks.Lookup(b.Type)
	if !ok {
		return found
	}

	if b.Type.UsesCount() {
		if b.Count == blocks.Empty {
			found[blocks.FieldCount] = requiredMessage(blocks.CountSpec)
		} else if msg := rangeMessage(blocks.CountSpec, b.Count); msg != "" {
			found[blocks.FieldCount] = msg
		}
	}

	for _, fs := range spec.Fields {
		v, ok := b.Constraints.Value(fs.Field)
		if !ok {
			if b.Type == blocks.VedicTables && fs.Field == blocks.FieldRows {
				found[fs.Field] = requiredMessage(fs)
			}
			continue
		}
		if msg := rangeMessage(fs, v); msg != "" {
			found[fs.Field] = msg
		}
	}

	if b.Type == blocks.Percentage {
		if msg := percentageMessage(b, found[blocks.FieldPercentageMin]); msg != "" {
			found[blocks.FieldPercentageMin] = msg
		}
	}
	return found
}

// percentageMessage applies the Min <= Max cross-field rule and returns the
// message that should be shown on percentageMin. current is the message
// already recorded there.
func percentageMessage(b blocks.Block, current string) string {
	lo, okLo := b.Constraints.Value(blocks.FieldPercentageMin)
	hi, okHi := b.Constraints.Value(blocks.FieldPercentageMax)
	if okLo && okHi && lo > hi {
		return msgPercentageOrder
	}
	if current == msgPercentageOrder {
		return ""
	}
	return current
}
