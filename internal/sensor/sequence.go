package sensor

import (
	"context"
	"slices"
	"sync"
)

// Sequence replays a scripted list of readings.
// Once the list is exhausted the last value is repeated indefinitely.
type Sequence struct {
	// values holds a private copy of the scripted readings.
	values []float64
	// cursor is the index of the next unconsumed value.
	cursor int
	// mu protects cursor.
	mu sync.Mutex
}

// NewSequence creates a sensor that returns values in order.
// It returns ErrEmptySequence when no values are given.
func NewSequence(values ...float64) (*Sequence, error) {
	if len(values) == 0 {
		return nil, ErrEmptySequence
	}

	return &Sequence{
		values: slices.Clone(values),
	}, nil
}

// NextMeasurement returns the next unconsumed value, or the last one when exhausted.
func (s *Sequence) NextMeasurement(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.values) {
		return s.values[len(s.values)-1], nil
	}

	value := s.values[s.cursor]
	s.cursor++

	return value, nil
}

// CallCount reports how many scripted values have been consumed.
// It stops growing once the sequence is exhausted.
func (s *Sequence) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cursor
}
