package paper

import (
	"strconv"
	"strings"

	"github.com/abhisek/talenthub/internal/blocks"
)

// Level names a paper level. Preset levels come with a server-curated
// block list.
type Level string

const (
	LevelCustom   Level = "Custom"
	LevelJunior   Level = "Junior"
	LevelAdvanced Level = "Advanced"
	LevelVedic1   Level = "Vedic-Level-1"
	LevelVedic2   Level = "Vedic-Level-2"
	LevelVedic3   Level = "Vedic-Level-3"
	LevelVedic4   Level = "Vedic-Level-4"
)

// AllLevels returns every level in menu order.
func AllLevels() []Level {
	levels := []Level{LevelCustom, LevelJunior}
	for i := 1; i <= 10; i++ {
		levels = append(levels, ABLevel(i))
	}
	return append(levels, LevelAdvanced, LevelVedic1, LevelVedic2, LevelVedic3, LevelVedic4)
}

// ABLevel returns the abacus level "AB-n".
func ABLevel(n int) Level {
	return Level("AB-" + strconv.Itoa(n))
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	for _, known := range AllLevels() {
		if l == known {
			return true
		}
	}
	return false
}

// HasPresets reports whether the service curates blocks for l.
func (l Level) HasPresets() bool {
	return strings.HasPrefix(string(l), "AB-") || l == LevelJunior || l == LevelAdvanced
}

// IsVedic reports whether l is one of the Vedic maths levels.
func (l Level) IsVedic() bool {
	return strings.HasPrefix(string(l), "Vedic-Level-")
}

// DefaultBlockType is the type given to a block added at level l.
func (l Level) DefaultBlockType() blocks.OpType {
	switch l {
	case LevelJunior:
		return blocks.DirectAddSub
	case LevelVedic1:
		return blocks.VedicMultiplyBy11
	}
	return blocks.AddSub
}

var (
	basicTypes = []blocks.OpType{
		blocks.AddSub, blocks.Addition, blocks.Subtraction, blocks.Multiplication, blocks.Division,
	}
	advancedTypes = []blocks.OpType{
		blocks.DecimalAddSub, blocks.DecimalMultiplication, blocks.DecimalDivision,
		blocks.IntegerAddSub, blocks.LCM, blocks.GCD, blocks.SquareRoot, blocks.CubeRoot,
		blocks.Percentage,
	}
	juniorTypes = []blocks.OpType{
		blocks.DirectAddSub, blocks.SmallFriendsAddSub, blocks.BigFriendsAddSub,
	}
)

// TypesFor returns the operation types offered in the type picker at l.
func (l Level) TypesFor() []blocks.OpType {
	switch {
	case l == LevelJunior:
		return juniorTypes
	case l == LevelAdvanced:
		return append(append([]blocks.OpType{}, basicTypes...), advancedTypes...)
	case l == LevelVedic1:
		var out []blocks.OpType
		for _, t := range blocks.AllTypes() {
			if t.IsVedic() {
				out = append(out, t)
			}
		}
		return out
	case l.IsVedic():
		// Higher Vedic levels have no client-configurable types yet.
		return nil
	case l == LevelCustom:
		return blocks.AllTypes()
	}
	return basicTypes
}
