package blocks

import "github.com/google/uuid"

// Block is one configured batch of questions of a single operation type.
type Block struct {
	ID          string      `json:"id" yaml:"id,omitempty"`
	Type        OpType      `json:"type" yaml:"type"`
	Count       int         `json:"count" yaml:"count"`
	Constraints Constraints `json:"constraints" yaml:"constraints,omitempty"`
	Title       string      `json:"title,omitempty" yaml:"title,omitempty"`

	// TitleIsCustom is set once the user edits the title by hand. It is
	// local state and never sent to the service.
	TitleIsCustom bool `json:"-" yaml:"-"`
}

// NewID returns a fresh opaque block identifier.
func NewID() string {
	return uuid.New().String()
}

// New creates a block of type t with registry defaults for every field and
// an automatic title.
func New(t OpType) Block {
	b := Block{
		ID:          NewID(),
		Type:        t,
		Count:       InitialCount,
		Constraints: Constraints{},
	}
	b = b.WithDefaults()
	b.Title = DeriveTitle(b)
	return b
}

// WithDefaults fills every unset field of b's type with its registry
// default. Values already present are kept.
func (b Block) WithDefaults() Block {
	spec, ok := Lookup(b.Type)
	if !ok {
		return b
	}
	out := b.Clone()
	for _, fs := range spec.Fields {
		if !fs.HasDefault() {
			continue
		}
		if _, set := out.Constraints[fs.Field]; !set {
			out.Constraints[fs.Field] = fs.Default
		}
	}
	return out
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	out := b
	if b.Constraints != nil {
		out.Constraints = b.Constraints.Clone()
	} else {
		out.Constraints = Constraints{}
	}
	return out
}

// Get returns the raw value of f, including the Empty sentinel. Count is
// always set.
func (b Block) Get(f Field) (int, bool) {
	if f == FieldCount {
		return b.Count, true
	}
	return b.Constraints.Get(f)
}

// With returns a copy of b with f set to v.
func (b Block) With(f Field, v int) Block {
	out := b.Clone()
	if f == FieldCount {
		out.Count = v
		return out
	}
	out.Constraints[f] = v
	return out
}

// Without returns a copy of b with f unset. Count cannot be unset and is
// marked Empty instead.
func (b Block) Without(f Field) Block {
	out := b.Clone()
	if f == FieldCount {
		out.Count = Empty
		return out
	}
	delete(out.Constraints, f)
	return out
}
