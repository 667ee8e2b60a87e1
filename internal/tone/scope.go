package tone

import (
	"sync"

	"github.com/faiface/beep"
)

// Scope records the last samples that went to the speaker so the tap pad
// can draw the waveform of the most recent tone.
type Scope struct {
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

func NewScope(ringSize int) *Scope {
	return &Scope{buffer: make([][2]float64, ringSize)}
}

// Wrap returns a streamer that plays src and records what it produced.
func (s *Scope) Wrap(src beep.Streamer) beep.Streamer {
	return &scopeTap{Source: src, scope: s}
}

func (s *Scope) record(samples [][2]float64) {
	s.mu.Lock()
	for i := range samples {
		s.buffer[s.nextIndex] = samples[i]
		s.nextIndex++
		if s.nextIndex >= len(s.buffer) {
			s.nextIndex = 0
		}
	}
	s.mu.Unlock()
}

// Snapshot returns up to the last n samples, oldest first.
func (s *Scope) Snapshot(n int) [][2]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.buffer) {
		n = len(s.buffer)
	}
	out := make([][2]float64, n)
	idx := s.nextIndex - n
	if idx < 0 {
		idx += len(s.buffer)
	}
	for i := 0; i < n; i++ {
		out[i] = s.buffer[idx]
		idx++
		if idx >= len(s.buffer) {
			idx = 0
		}
	}
	return out
}

type scopeTap struct {
	Source beep.Streamer
	scope  *Scope
}

func (t *scopeTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.scope.record(samples[:n])
	}
	return n, ok
}

func (t *scopeTap) Err() error { return t.Source.Err() }
