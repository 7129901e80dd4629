package surface

import "sync"

// Point is a position on the sim surface.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Placement is one recorded PlaceAt call.
type Placement struct {
	Target Target
	X, Y   int
}

// Sim is an in-memory Surface for headless runs and tests. Targets are
// registered up front; Remove simulates the host deleting an element,
// after which placements against it fail with *PlacementError.
type Sim struct {
	mu      sync.Mutex
	pos     map[Target]Point
	calls   []Placement
	dropped int
}

// NewSim creates a Sim with the given targets at (0, 0).
func NewSim(targets ...Target) *Sim {
	s := &Sim{pos: map[Target]Point{}}
	for _, t := range targets {
		s.pos[t] = Point{}
	}
	return s
}

// Add registers a target at (x, y).
func (s *Sim) Add(t Target, x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos[t] = Point{X: x, Y: y}
}

// Remove deletes a target from the surface.
func (s *Sim) Remove(t Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pos, t)
}

// PlaceAt implements Surface.
func (s *Sim) PlaceAt(target Target, container Container, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pos[target]; !ok {
		s.dropped++
		return &PlacementError{Target: target}
	}
	s.pos[target] = Point{X: x, Y: y}
	s.calls = append(s.calls, Placement{Target: target, X: x, Y: y})
	return nil
}

// Position returns a target's current position.
func (s *Sim) Position(t Target) (Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pos[t]
	return p, ok
}

// Calls returns a copy of every successful placement in order.
func (s *Sim) Calls() []Placement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Placement, len(s.calls))
	copy(out, s.calls)
	return out
}

// Dropped returns how many placements failed against removed targets.
func (s *Sim) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
