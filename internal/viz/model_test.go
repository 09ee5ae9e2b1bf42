package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/roboviz/internal/arbiter"
	"github.com/san-kum/roboviz/internal/playback"
	"github.com/san-kum/roboviz/internal/world"
)

func TestDirectionLabel(t *testing.T) {
	cases := []struct {
		rel  float64
		want string
	}{
		{0, "ahead"},
		{-20, "ahead"},
		{29, "ahead"},
		{45, "right"},
		{90, "right"},
		{-90, "left"},
		{-130, "left"},
		{180, "behind"},
		{-170, "behind"},
		{330, "ahead"}, // wraps to -30
		{-30, "ahead"},
		{30, "right"},
		{-150, "left"},
	}
	for _, tc := range cases {
		if got := directionLabel(tc.rel); got != tc.want {
			t.Errorf("directionLabel(%v) = %q, want %q", tc.rel, got, tc.want)
		}
	}
}

func TestClosestDirection(t *testing.T) {
	m := Model{lastState: world.SimulationState{
		SensorAnglesAbs: []float64{0, 90, 180},
		SensorDistances: []float64{1, 0.2, 1},
	}}
	if got := m.closestDirection(); got != "right" {
		t.Errorf("expected right, got %q", got)
	}

	m.lastState.SensorDistances = []float64{1, 1, 1}
	if got := m.closestDirection(); got != "clear" {
		t.Errorf("expected clear, got %q", got)
	}
}

func replayModel(t *testing.T, n int) Model {
	t.Helper()
	frames := make([]world.SimulationState, n)
	for i := range frames {
		frames[i] = world.SimulationState{
			Pose:  world.Pose{X: float64(i)},
			World: world.Extent{Width: 640, Height: 480},
		}
	}
	tk, err := playback.NewTicker(frames)
	if err != nil {
		t.Fatal(err)
	}
	return NewReplay(tk, 30, "minimal")
}

func TestUpdate_ReplayRendersFirstFrameFirst(t *testing.T) {
	m := replayModel(t, 3)

	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.lastState.World.Width != 640 || m.lastState.Pose.X != 0 {
		t.Errorf("first tick must render the opening frame, got %+v", m.lastState.Pose)
	}
	if m.lastSrc != arbiter.SourceTest {
		t.Errorf("replay frames report the test source, got %s", m.lastSrc)
	}
}

func TestUpdate_ReplayCadenceIndependentOfRenderRate(t *testing.T) {
	m := replayModel(t, 10)
	base := time.Now()
	m.lastTick = base

	next, _ := m.Update(TickMsg(base))
	m = next.(Model)

	// Four 10ms render ticks span 40ms of wall time: exactly one 30 Hz
	// playback step, no matter how fast the render loop runs.
	for i := 1; i <= 4; i++ {
		next, _ = m.Update(TickMsg(base.Add(time.Duration(i) * 10 * time.Millisecond)))
		m = next.(Model)
	}
	if m.lastState.Pose.X != 1 {
		t.Errorf("expected one playback step after 40ms, got frame %f", m.lastState.Pose.X)
	}

	// A slow render loop catches up: a 200ms gap covers six steps.
	next, _ = m.Update(TickMsg(base.Add(240 * time.Millisecond)))
	m = next.(Model)
	if m.lastState.Pose.X != 7 {
		t.Errorf("expected frame 7 after 240ms of playback, got %f", m.lastState.Pose.X)
	}
}

func TestUpdate_PauseFreezesFrames(t *testing.T) {
	m := replayModel(t, 3)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)

	if m.lastState.Pose.X != 0 {
		t.Errorf("paused model must not advance, got frame %f", m.lastState.Pose.X)
	}
}

func TestUpdate_ThemeCycles(t *testing.T) {
	m := replayModel(t, 2)
	before := m.theme.Name

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = next.(Model)
	if m.theme.Name == before {
		t.Error("expected the theme to change")
	}
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := replayModel(t, 2)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
}

func TestView_RendersPanels(t *testing.T) {
	m := replayModel(t, 2)
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)

	out := m.View()
	if out == "" {
		t.Fatal("expected a non-empty view")
	}
}

func TestNextTheme_Wraps(t *testing.T) {
	last := Themes[len(Themes)-1].Name
	if NextTheme(last).Name != Themes[0].Name {
		t.Error("theme cycling must wrap")
	}
	if NextTheme("unknown").Name != Themes[0].Name {
		t.Error("unknown theme starts the cycle")
	}
}
