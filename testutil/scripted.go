package testutil

import "sync"

// ScriptedSource replays fixed draws. When a script runs out, the last value
// is repeated; an empty script yields zero.
type ScriptedSource struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
	ii, fi int
}

// NewScriptedSource returns a source that answers Intn calls from ints and
// Float64 calls from floats, in order. Intn results are reduced modulo n.
func NewScriptedSource(ints []int, floats []float64) *ScriptedSource {
	return &ScriptedSource{ints: ints, floats: floats}
}

// Intn implements kmeans.Source.
func (s *ScriptedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[min(s.ii, len(s.ints)-1)]
	s.ii++
	return v % n
}

// Float64 implements kmeans.Source.
func (s *ScriptedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[min(s.fi, len(s.floats)-1)]
	s.fi++
	return v
}

// Draws returns how many Intn and Float64 values have been consumed.
func (s *ScriptedSource) Draws() (ints, floats int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ii, s.fi
}
