// Package editor holds the ordered block list of a paper together with its
// field validation errors. Every operation returns a new State; the
// receiver is never modified, so callers can compare or keep old values.
package editor

import (
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/talenthub/internal/blocks"
)

// State is the single owner of the block list and its error map.
type State struct {
	blocks []blocks.Block
	errors Errors
}

// New returns a State holding bs.
func New(bs ...blocks.Block) State {
	return State{blocks: cloneAll(bs), errors: Errors{}}
}

// Blocks returns a copy of the block list.
func (s State) Blocks() []blocks.Block {
	return cloneAll(s.blocks)
}

// Len returns the number of blocks.
func (s State) Len() int {
	return len(s.blocks)
}

// Block returns the block at i.
func (s State) Block(i int) (blocks.Block, bool) {
	if i < 0 || i >= len(s.blocks) {
		return blocks.Block{}, false
	}
	return s.blocks[i].Clone(), true
}

// Error returns the message recorded for field f of the block with id.
func (s State) Error(id string, f blocks.Field) string {
	return s.errors[id][f]
}

// FieldErrors returns a copy of the messages recorded for the block with id.
func (s State) FieldErrors(id string) map[blocks.Field]string {
	out := make(map[blocks.Field]string, len(s.errors[id]))
	for k, v := range s.errors[id] {
		out[k] = v
	}
	return out
}

// HasErrors reports whether any field error is outstanding.
func (s State) HasErrors() bool {
	return len(s.errors) > 0
}

// Replace swaps in a new block list and clears all errors. Used when a
// preset is loaded or a level is switched.
func (s State) Replace(bs []blocks.Block) State {
	return State{blocks: cloneAll(bs), errors: Errors{}}
}

// Add appends a new block of type t with default settings.
func (s State) Add(t blocks.OpType) State {
	return s.with(append(cloneAll(s.blocks), blocks.New(t)), s.errors)
}

// Remove deletes the block at i.
func (s State) Remove(i int) State {
	if !s.valid(i) {
		return s
	}
	id := s.blocks[i].ID
	bs := slices.Delete(cloneAll(s.blocks), i, i+1)
	return s.with(bs, s.errors.without(id))
}

// Duplicate inserts a deep copy of the block at i directly after it, with a
// fresh ID and a regenerated title.
func (s State) Duplicate(i int) State {
	if !s.valid(i) {
		return s
	}
	dup := s.blocks[i].Clone()
	dup.ID = blocks.NewID()
	dup.TitleIsCustom = false
	dup.Title = blocks.DeriveTitle(dup)
	bs := slices.Insert(cloneAll(s.blocks), i+1, dup)
	return s.with(bs, s.errors)
}

// MoveUp swaps the block at i with its predecessor. No-op at the top.
func (s State) MoveUp(i int) State {
	if !s.valid(i) || i == 0 {
		return s
	}
	return s.Reorder(i, i-1)
}

// MoveDown swaps the block at i with its successor. No-op at the bottom.
func (s State) MoveDown(i int) State {
	if !s.valid(i) || i == len(s.blocks)-1 {
		return s
	}
	return s.Reorder(i, i+1)
}

// Reorder removes the block at from and reinserts it at to.
func (s State) Reorder(from, to int) State {
	if !s.valid(from) || !s.valid(to) || from == to {
		return s
	}
	bs := cloneAll(s.blocks)
	moved := bs[from]
	bs = slices.Delete(bs, from, from+1)
	bs = slices.Insert(bs, to, moved)
	return s.with(bs, s.errors)
}

// Patch is a partial block update. Nil fields are left untouched;
// Constraints are merged key by key.
type Patch struct {
	Type        *blocks.OpType
	Count       *int
	Constraints blocks.Constraints
	Title       *string
}

// Update merges p into the block at i.
//
// A type change applies the new type's resets and fills its missing fields
// with defaults. An explicit Title wins and marks the title custom (an
// empty title hands it back to automatic naming). Otherwise a type or
// constraint change regenerates the title unless the user customized it.
func (s State) Update(i int, p Patch) State {
	if !s.valid(i) {
		return s
	}
	old := s.blocks[i]
	b := old.Clone()

	typeChanged := p.Type != nil && *p.Type != old.Type
	if p.Type != nil {
		b.Type = *p.Type
	}
	if p.Count != nil {
		b.Count = *p.Count
	}
	for k, v := range p.Constraints {
		b.Constraints[k] = v
	}
	if typeChanged {
		if spec, ok := blocks.Lookup(b.Type); ok {
			for k, v := range spec.Resets {
				b.Constraints[k] = v
			}
		}
		b = b.WithDefaults()
	}

	switch {
	case p.Title != nil && *p.Title == "":
		b.Title = blocks.DeriveTitle(b)
		b.TitleIsCustom = false
	case p.Title != nil:
		b.Title = *p.Title
		b.TitleIsCustom = true
	case typeChanged || p.Constraints != nil:
		if blocks.IsAutoTitle(old) {
			b.Title = blocks.DeriveTitle(b)
			b.TitleIsCustom = false
		}
	}

	bs := cloneAll(s.blocks)
	bs[i] = b
	errs := s.errors
	if typeChanged {
		errs = errs.without(b.ID)
	}
	return s.with(bs, errs)
}

// SetTitle sets a hand-written title on the block at i.
func (s State) SetTitle(i int, title string) State {
	return s.Update(i, Patch{Title: &title})
}

// SetType switches the block at i to t.
func (s State) SetType(i int, t blocks.OpType) State {
	return s.Update(i, Patch{Type: &t})
}

// SetField applies a keystroke-level edit of field f on the block at i.
// An empty string stores the Empty sentinel (optional fields become unset)
// and shows no error. Numbers are stored as typed, even out of range, and
// flagged. Anything else is rejected and leaves the state unchanged.
func (s State) SetField(i int, f blocks.Field, raw string) State {
	b, fs, ok := s.field(i, f)
	if !ok {
		return s
	}
	raw = strings.TrimSpace(raw)

	if raw == "" {
		var next State
		if fs.Optional {
			next = s.unset(i, f)
		} else {
			next = s.store(i, f, blocks.Empty)
		}
		next.errors = next.errors.with(b.ID, f, "")
		return next
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return s
	}
	next := s.store(i, f, n)
	next.errors = next.errors.with(b.ID, f, rangeMessage(fs, n))
	return next
}

// Blur finalizes field f of the block at i when focus leaves it.
// An empty required field reverts to its default and records a required
// error. An out-of-range value is clamped (optional fields are cleared).
func (s State) Blur(i int, f blocks.Field) State {
	b, fs, ok := s.field(i, f)
	if !ok {
		return s
	}
	v, set := b.Get(f)

	next := s
	msg := ""
	switch {
	case !set:
	case v == blocks.Empty && fs.Optional:
		next = s.unset(i, f)
	case v == blocks.Empty:
		next = s.store(i, f, fs.Default)
		msg = requiredMessage(fs)
	case !fs.InRange(v) && fs.Optional:
		next = s.unset(i, f)
	case !fs.InRange(v):
		next = s.store(i, f, fs.Clamp(v))
	}
	next.errors = next.errors.with(b.ID, f, msg)

	if b.Type == blocks.Percentage && (f == blocks.FieldPercentageMin || f == blocks.FieldPercentageMax) {
		nb := next.blocks[i]
		next.errors = next.errors.with(nb.ID, blocks.FieldPercentageMin, percentageMessage(nb, next.errors[nb.ID][blocks.FieldPercentageMin]))
	}
	return next
}

// ValidateAll runs the submission-time check over every block and replaces
// the error map with its findings. ok is false when any error was found.
func (s State) ValidateAll() (State, bool) {
	errs := Errors{}
	for _, b := range s.blocks {
		if found := validateBlock(b); len(found) > 0 {
			errs[b.ID] = found
		}
	}
	return s.with(s.blocks, errs), len(errs) == 0
}

func (s State) with(bs []blocks.Block, errs Errors) State {
	return State{blocks: bs, errors: errs}
}

func (s State) valid(i int) bool {
	return i >= 0 && i < len(s.blocks)
}

func (s State) field(i int, f blocks.Field) (blocks.Block, blocks.FieldSpec, bool) {
	if !s.valid(i) {
		return blocks.Block{}, blocks.FieldSpec{}, false
	}
	b := s.blocks[i]
	spec, ok := blocks.Lookup(b.Type)
	if !ok {
		return b, blocks.FieldSpec{}, false
	}
	fs, ok := spec.Field(f)
	return b, fs, ok
}

// store routes a value through Update so title regeneration applies.
func (s State) store(i int, f blocks.Field, v int) State {
	if f == blocks.FieldCount {
		return s.Update(i, Patch{Count: &v})
	}
	return s.Update(i, Patch{Constraints: blocks.Constraints{f: v}})
}

func (s State) unset(i int, f blocks.Field) State {
	old := s.blocks[i]
	b := old.Without(f)
	if blocks.IsAutoTitle(old) {
		b.Title = blocks.DeriveTitle(b)
	}
	bs := cloneAll(s.blocks)
	bs[i] = b
	return s.with(bs, s.errors)
}

func cloneAll(bs []blocks.Block) []blocks.Block {
	out := make([]blocks.Block, len(bs))
	for i, b := range bs {
		out[i] = b.Clone()
	}
	return out
}
