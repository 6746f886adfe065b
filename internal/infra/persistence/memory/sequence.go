package memory

import (
	"cinegraph/internal/domain/repository"

	"go.uber.org/atomic"
)

// Sequence is a process-local, lock-free IDSequence starting after a given value.
type Sequence struct {
	last *atomic.Int64
}

var _ repository.IDSequence = (*Sequence)(nil)

// NewSequence returns a sequence whose first Next() is start+1.
func NewSequence(start int64) *Sequence {
	return &Sequence{last: atomic.NewInt64(start)}
}

// Next returns the next identifier. Safe for concurrent use.
func (s *Sequence) Next() int64 {
	return s.last.Inc()
}

// Last reports the most recently issued identifier.
func (s *Sequence) Last() int64 {
	return s.last.Load()
}
