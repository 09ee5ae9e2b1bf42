// Package arbiter decides which simulation state source is authoritative on
// each render tick.
//
// Producers (the training stream, the preview stream, the playback ticker)
// each own exactly one setter; the render loop owns the single read method.
// Every slot is a single-value "latest wins" cell: a state that arrives
// before the previous one was rendered simply replaces it. There is no
// queueing and no backpressure.
package arbiter

import (
	"sync"

	"github.com/san-kum/roboviz/internal/world"
)

// Source names one tier of the precedence order.
type Source int

const (
	SourceLocal Source = iota
	SourceHold
	SourcePreview
	SourceTraining
	SourceTest
)

func (s Source) String() string {
	switch s {
	case SourceTest:
		return "test"
	case SourceTraining:
		return "training"
	case SourcePreview:
		return "preview"
	case SourceHold:
		return "hold"
	default:
		return "local"
	}
}

// precedence is the evaluation order, strongest first. The order itself is
// the contract: test playback beats live training, live training beats the
// idle preview, a pending training connection holds the last frame, and
// only a fully idle client runs the demo physics.
var precedence = []Source{SourceTest, SourceTraining, SourcePreview, SourceHold}

// Telemetry is the training progress readout carried alongside (and
// sometimes without) a spatial snapshot.
type Telemetry struct {
	CompletedSteps int
	TotalSteps     int
	Episode        int
	Reward         float64
}

// Context holds the shared mutable state written by stream callbacks and
// read by the render loop. All access is mutex-guarded: unlike the original
// single-threaded event loop, socket readers here are real goroutines.
type Context struct {
	mu sync.Mutex

	profile        string
	testMode       bool
	trainingActive bool

	training  *world.SimulationState
	preview   *world.SimulationState
	testFrame *world.SimulationState
	lastDrawn *world.SimulationState

	telemetry Telemetry
}

// NewContext returns a context pinned to the given environment profile.
func NewContext(profile string) *Context {
	return &Context{profile: profile}
}

// SetTraining stores the latest training snapshot. Ignored in test mode.
func (c *Context) SetTraining(st world.SimulationState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.testMode {
		return
	}
	c.training = &st
}

// SetTelemetry updates training progress counters. Telemetry flows even when
// the embedded snapshot is empty (early in a run).
func (c *Context) SetTelemetry(t Telemetry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.telemetry = t
}

// SetPreview stores the latest preview snapshot. Writes are dropped while
// training data is authoritative or in test mode, so a racing preview frame
// can never overwrite live training state.
func (c *Context) SetPreview(st world.SimulationState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.testMode {
		return
	}
	if c.trainingActive && c.training != nil {
		return
	}
	c.preview = &st
}

// SetTestFrame stores the current playback frame.
func (c *Context) SetTestFrame(st world.SimulationState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.testFrame = &st
}

// ClearTraining demotes the training source after a socket error or close.
func (c *Context) ClearTraining() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.training = nil
}

// ClearPreview demotes the preview source after a socket error or close.
func (c *Context) ClearPreview() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preview = nil
}

// SetTestMode toggles test playback. Both transitions invalidate cached
// backend state so nothing stale survives the mode switch.
func (c *Context) SetTestMode(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.testMode == on {
		return
	}
	c.testMode = on
	c.resetLocked()
}

// SetTrainingActive flips the externally supplied training flag. Toggling
// invalidates the training snapshot and progress counters for the new
// run; the preview cache survives, since the preview stream runs
// independently of the flag.
func (c *Context) SetTrainingActive(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.trainingActive == on {
		return
	}
	c.trainingActive = on
	c.training = nil
	c.telemetry = Telemetry{}
}

// SetProfile switches the environment profile. A change invalidates every
// cached state including the held frame; stale geometry from the previous
// profile must never be drawn.
func (c *Context) SetProfile(profile string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == profile {
		return
	}
	c.profile = profile
	c.resetLocked()
	c.lastDrawn = nil
}

func (c *Context) resetLocked() {
	c.training = nil
	c.preview = nil
	c.testFrame = nil
	c.telemetry = Telemetry{}
}

// Authoritative evaluates the precedence order and returns the state to
// draw this tick. SourceLocal means no source holds data and the caller
// should advance the demo physics instead.
func (c *Context) Authoritative() (world.SimulationState, Source) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, src := range precedence {
		st, ok := c.probeLocked(src)
		if !ok {
			continue
		}
		if src != SourceHold {
			c.lastDrawn = st
		}
		return *st, src
	}
	return world.SimulationState{}, SourceLocal
}

func (c *Context) probeLocked(src Source) (*world.SimulationState, bool) {
	switch src {
	case SourceTest:
		if c.testMode && c.testFrame != nil {
			return c.testFrame, true
		}
	case SourceTraining:
		if c.trainingActive && !c.testMode && c.training != nil {
			return c.training, true
		}
	case SourcePreview:
		// Reached only when the training probe failed, so a cached preview
		// keeps painting until the first training frame lands.
		if !c.testMode && c.preview != nil {
			return c.preview, true
		}
	case SourceHold:
		// Training requested with no live frame from any stream, or test
		// mode awaiting its first frame: hold the last drawn frame instead
		// of flickering into demo physics.
		if (c.trainingActive || c.testMode) && c.lastDrawn != nil {
			return c.lastDrawn, true
		}
	}
	return nil, false
}

// Telemetry returns the latest training progress counters.
func (c *Context) Telemetry() Telemetry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.telemetry
}

// Profile returns the active environment profile key.
func (c *Context) Profile() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// TestMode reports whether test playback is active.
func (c *Context) TestMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.testMode
}

// TrainingActive reports the externally supplied training flag.
func (c *Context) TrainingActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trainingActive
}
