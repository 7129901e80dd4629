// Package layout computes list geometry for stacked note cards: where
// each card belongs after an insert, delete, or reorder.
package layout

// Column is a vertical stack of items. Item i sits below the summed
// heights of the items above it, plus Spacing between neighbours.
type Column struct {
	Spacing int
}

// Offsets returns the y position of each item in stack order.
func (c Column) Offsets(heights []int) []int {
	offsets := make([]int, len(heights))
	y := 0
	for i, h := range heights {
		offsets[i] = y
		y += h + c.Spacing
	}
	return offsets
}

// Move pairs an item's current y with where the column wants it.
type Move struct {
	Index  int
	BeginY int
	FinalY int
}

// Moves returns one Move per item whose current position differs from
// its layout position. currentY and heights run in stack order.
func (c Column) Moves(currentY, heights []int) []Move {
	offsets := c.Offsets(heights)
	var moves []Move
	for i, want := range offsets {
		if i < len(currentY) && currentY[i] != want {
			moves = append(moves, Move{Index: i, BeginY: currentY[i], FinalY: want})
		}
	}
	return moves
}
