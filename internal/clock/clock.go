package clock

import "time"

// Clock is the engine's single source of the current instant. All window
// and week-boundary math is derived from Now(), so tests can substitute a
// manual clock and step time deterministically.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Manual is a hand-driven clock for tests.
type Manual struct {
	Current time.Time
}

func NewManual(at time.Time) *Manual { return &Manual{Current: at} }

func (m *Manual) Now() time.Time { return m.Current }

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) { m.Current = m.Current.Add(d) }

// Set jumps the clock to at.
func (m *Manual) Set(at time.Time) { m.Current = at }
