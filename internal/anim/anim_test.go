package anim_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notekit/notekit/internal/anim"
)

var convergenceCases = []struct {
	Name       string
	BeginX     int
	BeginY     int
	FinalX     int
	FinalY     int
	FPS        int
	DurationMS int
}{
	{"scroll up", 0, 600, 0, 0, 20, 5000},
	{"diagonal", 0, 0, 100, 100, 60, 1000},
	{"negative x", 37, 374, -344, 345, 60, 1000},
	{"coarse", 0, 0, 100, 100, 20, 500},
	{"single pixel", 10, 10, 11, 10, 30, 250},
	{"short fast", 0, 480, 0, 0, 60, 250},
}

// collect drains an animation, guarding against one that never ends.
func collect(t *testing.T, a *anim.Animation) []anim.Frame {
	t.Helper()
	var frames []anim.Frame
	for i := 0; i < 100000; i++ {
		f, ok := a.Advance()
		if !ok {
			return frames
		}
		frames = append(frames, f)
	}
	t.Fatal("animation did not terminate")
	return nil
}

func TestConvergence(t *testing.T) {
	for _, tc := range convergenceCases {
		t.Run(tc.Name, func(t *testing.T) {
			a, err := anim.New(anim.Params{
				BeginX: tc.BeginX, BeginY: tc.BeginY,
				FinalX: tc.FinalX, FinalY: tc.FinalY,
				TargetFPS: tc.FPS, DurationMS: tc.DurationMS,
			})
			require.NoError(t, err)

			frames := collect(t, a)
			require.NotEmpty(t, frames)

			last := frames[len(frames)-1]
			assert.Equal(t, tc.FinalX, last.X)
			assert.Equal(t, tc.FinalY, last.Y)
			assert.True(t, last.Final)
			assert.True(t, a.Completed())
		})
	}
}

func TestMonotonicBoundedness(t *testing.T) {
	for _, tc := range convergenceCases {
		t.Run(tc.Name, func(t *testing.T) {
			a, err := anim.New(anim.Params{
				BeginX: tc.BeginX, BeginY: tc.BeginY,
				FinalX: tc.FinalX, FinalY: tc.FinalY,
				TargetFPS: tc.FPS, DurationMS: tc.DurationMS,
			})
			require.NoError(t, err)

			loX, hiX := min(tc.BeginX, tc.FinalX), max(tc.BeginX, tc.FinalX)
			loY, hiY := min(tc.BeginY, tc.FinalY), max(tc.BeginY, tc.FinalY)
			prevElapsed := 0.0
			for _, f := range collect(t, a) {
				assert.GreaterOrEqual(t, f.X, loX)
				assert.LessOrEqual(t, f.X, hiX)
				assert.GreaterOrEqual(t, f.Y, loY)
				assert.LessOrEqual(t, f.Y, hiY)
				assert.GreaterOrEqual(t, f.ElapsedMS, prevElapsed)
				prevElapsed = f.ElapsedMS
			}
		})
	}
}

func TestFrameCount(t *testing.T) {
	for _, tc := range convergenceCases {
		t.Run(tc.Name, func(t *testing.T) {
			a, err := anim.New(anim.Params{
				BeginX: tc.BeginX, BeginY: tc.BeginY,
				FinalX: tc.FinalX, FinalY: tc.FinalY,
				TargetFPS: tc.FPS, DurationMS: tc.DurationMS,
			})
			require.NoError(t, err)

			frames := collect(t, a)
			nominal := int(math.Floor(float64(tc.DurationMS) / 1000 * float64(tc.FPS)))
			nonFinal := len(frames) - 1
			assert.GreaterOrEqual(t, nonFinal, nominal-1, "too few frames")
			assert.LessOrEqual(t, nonFinal, nominal+1, "too many frames")
		})
	}
}

// The reference case from the desktop app: a note card scrolling from
// y=600 to y=0 at 20fps over 5 seconds lands after exactly 100 frames
// with 5000ms elapsed.
func TestReferenceAnimation(t *testing.T) {
	a, err := anim.New(anim.Params{
		BeginX: 0, BeginY: 600, FinalX: 0, FinalY: 0,
		TargetFPS: 20, DurationMS: 5000,
	})
	require.NoError(t, err)

	frames := collect(t, a)
	require.Len(t, frames, 100)

	last := frames[99]
	assert.Equal(t, 0, last.X)
	assert.Equal(t, 0, last.Y)
	assert.Equal(t, 100, last.FrameNumber)
	assert.Equal(t, 5000.0, last.ElapsedMS)
	assert.True(t, last.Final)
}

func TestStillAxisNeverMoves(t *testing.T) {
	a, err := anim.New(anim.Params{
		BeginX: 42, BeginY: 300, FinalX: 42, FinalY: 0,
		TargetFPS: 30, DurationMS: 400,
	})
	require.NoError(t, err)

	for _, f := range collect(t, a) {
		assert.Equal(t, 42, f.X)
	}
}

func TestNoopCompletedAtConstruction(t *testing.T) {
	a, err := anim.New(anim.Params{
		BeginX: 7, BeginY: 9, FinalX: 7, FinalY: 9,
		TargetFPS: 60, DurationMS: 250,
	})
	require.NoError(t, err)

	assert.True(t, a.Completed())
	_, ok := a.Advance()
	assert.False(t, ok)
}

func TestInvalidParams(t *testing.T) {
	cases := []struct {
		Name       string
		FPS        int
		DurationMS int
	}{
		{"zero fps", 0, 250},
		{"negative fps", -30, 250},
		{"zero duration", 60, 0},
		{"negative duration", 60, -100},
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			a, err := anim.New(anim.Params{
				FinalX: 10, FinalY: 10,
				TargetFPS: tc.FPS, DurationMS: tc.DurationMS,
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, anim.ErrInvalidParameter))
			assert.Nil(t, a)
		})
	}
}

func TestAdvanceAfterCompletionKeepsSignalingDone(t *testing.T) {
	a, err := anim.New(anim.Params{
		BeginX: 0, BeginY: 0, FinalX: 5, FinalY: 0,
		TargetFPS: 10, DurationMS: 100,
	})
	require.NoError(t, err)

	collect(t, a)
	for i := 0; i < 3; i++ {
		_, ok := a.Advance()
		assert.False(t, ok)
	}
}
