package api

import (
	"context"
	"sync"
)

// Kinds of request guarded by Supersede.
const (
	KindPreview = "preview"
	KindPDF     = "pdf"
	KindPresets = "presets"
	KindSubmit  = "submit"
)

// Ticket identifies one guarded request.
type Ticket struct {
	Kind string
	Gen  uint64
}

// Supersede keeps at most one request in flight per kind. Starting a new
// request cancels the previous one of the same kind, and a response that
// belongs to an older generation is reported as ErrSuperseded.
type Supersede struct {
	mu      sync.Mutex
	gen     map[string]uint64
	cancels map[string]context.CancelFunc
}

// NewSupersede returns an empty guard.
func NewSupersede() *Supersede {
	return &Supersede{
		gen:     make(map[string]uint64),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Begin cancels any in-flight request of kind and returns the context
// and ticket for the new one.
func (s *Supersede) Begin(parent context.Context, kind string) (context.Context, Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.cancels[kind]; ok {
		cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.gen[kind]++
	s.cancels[kind] = cancel
	return ctx, Ticket{Kind: kind, Gen: s.gen[kind]}
}

// current reports whether t is still the latest request of its kind.
// s.mu must be held.
func (s *Supersede) current(t Ticket) bool {
	return s.gen[t.Kind] == t.Gen
}

// Done releases t. It returns ErrSuperseded when a newer request of the
// same kind has started, and err otherwise.
func (s *Supersede) Done(t Ticket, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(t) {
		return ErrSuperseded
	}
	if cancel, ok := s.cancels[t.Kind]; ok {
		cancel()
		delete(s.cancels, t.Kind)
	}
	return err
}

// Cancel aborts the in-flight request of kind, if any. Its response will
// be reported as superseded.
func (s *Supersede) Cancel(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.cancels[kind]; ok {
		cancel()
		delete(s.cancels, kind)
	}
	s.gen[kind]++
}

// Run executes fn as the latest request of kind.
func Run[T any](ctx context.Context, s *Supersede, kind string, fn func(context.Context) (T, error)) (T, Ticket, error) {
	rctx, t := s.Begin(ctx, kind)
	v, err := fn(rctx)
	if err = s.Done(t, err); err != nil {
		var zero T
		return zero, t, err
	}
	return v, t, nil
}
