// Package playback steps a recorded frame buffer for test mode. Frames are
// immutable once loaded; the ticker only moves an index across them.
package playback

import (
	"errors"

	"github.com/san-kum/roboviz/internal/world"
)

// ErrNoFrames is returned when a recording holds nothing drawable.
var ErrNoFrames = errors.New("playback: recording has no frames")

// Ticker walks a frame buffer from start to end and parks on the final
// frame. It is not safe for concurrent use; the render loop owns it.
type Ticker struct {
	frames []world.SimulationState
	index  int
	done   bool
}

// NewTicker wraps a frame buffer. The slice is borrowed, not copied; the
// caller must not mutate it afterwards.
func NewTicker(frames []world.SimulationState) (*Ticker, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	return &Ticker{frames: frames}, nil
}

// Current returns the frame under the cursor without advancing.
func (t *Ticker) Current() world.SimulationState {
	return t.frames[t.index]
}

// Advance moves to the next frame and returns it. Past the end it keeps
// returning the last frame so the canvas freezes on the final state.
func (t *Ticker) Advance() world.SimulationState {
	if t.index < len(t.frames)-1 {
		t.index++
	} else {
		t.done = true
	}
	return t.frames[t.index]
}

// Done reports whether playback has reached the final frame.
func (t *Ticker) Done() bool {
	return t.done
}

// Restart rewinds to the first frame.
func (t *Ticker) Restart() {
	t.index = 0
	t.done = false
}

// Len returns the total frame count.
func (t *Ticker) Len() int {
	return len(t.frames)
}

// Position returns the zero-based cursor index.
func (t *Ticker) Position() int {
	return t.index
}
