package surface

import (
	"errors"
	"testing"
)

func TestSimPlaceAndRecord(t *testing.T) {
	s := NewSim("a")
	if err := s.PlaceAt("a", nil, 10, 20); err != nil {
		t.Fatalf("place: %v", err)
	}
	p, ok := s.Position("a")
	if !ok || p.X != 10 || p.Y != 20 {
		t.Fatalf("position: %+v ok=%v", p, ok)
	}
	calls := s.Calls()
	if len(calls) != 1 || calls[0].Target != "a" || calls[0].Y != 20 {
		t.Fatalf("calls: %+v", calls)
	}
}

func TestSimRemovedTargetFailsWithPlacementError(t *testing.T) {
	s := NewSim("a")
	s.Remove("a")

	err := s.PlaceAt("a", nil, 0, 0)
	var perr *PlacementError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PlacementError, got %v", err)
	}
	if s.Dropped() != 1 {
		t.Fatalf("dropped = %d", s.Dropped())
	}
	if len(s.Calls()) != 0 {
		t.Fatal("failed placement must not be recorded")
	}
}
