// Package surface defines the placement boundary between the animation
// engine and whatever is actually drawing widgets on screen.
package surface

import "fmt"

// Target is an opaque handle to a movable element owned by the host
// surface. The engine never owns a target; the host may delete it at
// any moment, including mid-animation.
type Target any

// Container is an opaque handle to the coordinate space a target is
// placed in. Same ownership rule as Target.
type Container any

// Surface is the placement primitive. PlaceAt moves target to (x, y)
// within container and returns a *PlacementError when either handle no
// longer exists on the host surface. No other error kind is expected.
type Surface interface {
	PlaceAt(target Target, container Container, x, y int) error
}

// PlacementError reports a placement against a target or container that
// is gone. Recoverable and scoped to a single frame; callers skip the
// frame and move on.
type PlacementError struct {
	Target Target
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("placement target %v no longer exists", e.Target)
}
