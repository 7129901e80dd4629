package layout

import "testing"

func TestColumnOffsets(t *testing.T) {
	c := Column{Spacing: 4}
	got := c.Offsets([]int{40, 60, 40})
	want := []int{0, 44, 108}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("offset %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestColumnMovesOnlyDisplacedItems(t *testing.T) {
	c := Column{}
	// Second card was deleted; the two below it shift up.
	current := []int{0, 80, 120}
	heights := []int{40, 40, 40}
	moves := c.Moves(current, heights)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %v", moves)
	}
	if moves[0].Index != 1 || moves[0].BeginY != 80 || moves[0].FinalY != 40 {
		t.Fatalf("unexpected first move: %+v", moves[0])
	}
	if moves[1].Index != 2 || moves[1].BeginY != 120 || moves[1].FinalY != 80 {
		t.Fatalf("unexpected second move: %+v", moves[1])
	}
}

func TestColumnMovesEmptyWhenSettled(t *testing.T) {
	c := Column{Spacing: 2}
	heights := []int{30, 30}
	if moves := c.Moves(c.Offsets(heights), heights); len(moves) != 0 {
		t.Fatalf("expected no moves, got %v", moves)
	}
}
