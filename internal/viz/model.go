// Package viz is the bubbletea front end: it ticks the render loop,
// reads the authoritative state each frame, and lays out the canvas next
// to the stats panel.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/roboviz/internal/arbiter"
	"github.com/san-kum/roboviz/internal/localsim"
	"github.com/san-kum/roboviz/internal/playback"
	"github.com/san-kum/roboviz/internal/render"
	"github.com/san-kum/roboviz/internal/storage"
	"github.com/san-kum/roboviz/internal/telemetry"
	"github.com/san-kum/roboviz/internal/world"
)

// Mode selects where frames come from.
type Mode int

const (
	// ModeWatch follows the backend, falling back to demo physics.
	ModeWatch Mode = iota
	// ModeDemo runs the local wanderer only.
	ModeDemo
	// ModeReplay steps a recorded frame buffer.
	ModeReplay
)

const (
	defaultCanvasCols = 80
	defaultCanvasRows = 24
	statsPanelWidth   = 48

	// playbackInterval fixes recorded playback at ~30 Hz regardless of
	// the render loop's own frame rate.
	playbackInterval = time.Second / 30
)

type TickMsg time.Time

// Model contains the render loop state and UI context.
type Model struct {
	mode Mode
	fps  int

	arb    *arbiter.Context
	sim    *localsim.Sim
	ticker *playback.Ticker

	pipeline *render.Pipeline
	tracker  *telemetry.Tracker
	store    *storage.Store
	theme    Theme
	seed     int64

	paused      bool
	recording   bool
	recorded    []world.SimulationState
	lastTick    time.Time
	lastState   world.SimulationState
	lastSrc     arbiter.Source
	replayAccum time.Duration
	replayDrawn bool
	notice      string
	showHelp    bool
}

// NewWatch builds a model that follows the arbiter; streams are started
// by the caller.
func NewWatch(arb *arbiter.Context, fps int, theme string, seed int64) Model {
	m := newModel(ModeWatch, fps, theme, seed)
	m.arb = arb
	m.sim = localsim.New(world.Get(arb.Profile()), seed)
	return m
}

// NewDemo builds a model running only the local physics.
func NewDemo(profile world.Profile, fps int, theme string, seed int64) Model {
	m := newModel(ModeDemo, fps, theme, seed)
	m.sim = localsim.New(profile, seed)
	return m
}

// NewReplay builds a model stepping a recorded frame buffer.
func NewReplay(ticker *playback.Ticker, fps int, theme string) Model {
	m := newModel(ModeReplay, fps, theme, 0)
	m.ticker = ticker
	return m
}

func newModel(mode Mode, fps int, theme string, seed int64) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		mode:     mode,
		fps:      fps,
		seed:     seed,
		pipeline: render.NewPipeline(defaultCanvasCols, defaultCanvasRows),
		tracker:  telemetry.NewTracker(),
		theme:    GetTheme(theme),
		lastTick: time.Now(),
	}
}

// WithStore attaches the recording catalog used by the record key.
func (m Model) WithStore(s *storage.Store) Model {
	m.store = s
	return m
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles input events and advances the frame source.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		cols := msg.Width - statsPanelWidth - 6
		rows := msg.Height - 4
		if cols < 20 {
			cols = 20
		}
		if rows < 10 {
			rows = 10
		}
		m.pipeline.Resize(cols, rows)
		return m, nil
	case TickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.lastTick)
		m.lastTick = now
		if !m.paused {
			m.step(dt)
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return *m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "r":
		m.toggleRecording()
	case "p":
		m.cycleProfile()
	case "enter":
		if m.mode == ModeReplay {
			m.ticker.Restart()
			m.tracker.Reset()
			m.replayAccum = 0
			m.replayDrawn = false
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return *m, nil
}

// step pulls one frame from the active source and renders it.
func (m *Model) step(dt time.Duration) {
	var st world.SimulationState
	src := arbiter.SourceLocal

	switch m.mode {
	case ModeReplay:
		src = arbiter.SourceTest
		if !m.replayDrawn {
			// The first tick shows the opening frame; advancing starts on
			// the next one.
			m.replayDrawn = true
			m.replayAccum = 0
			st = m.ticker.Current()
			break
		}
		m.replayAccum += dt
		for m.replayAccum >= playbackInterval {
			m.replayAccum -= playbackInterval
			m.ticker.Advance()
		}
		st = m.ticker.Current()
	case ModeDemo:
		st = m.sim.Step(dt.Seconds() * 1000)
	case ModeWatch:
		st, src = m.arb.Authoritative()
		if src == arbiter.SourceLocal {
			m.syncSimProfile()
			st = m.sim.Step(dt.Seconds() * 1000)
		}
	}

	m.lastState = st
	m.lastSrc = src
	m.tracker.Observe(st)
	if m.recording {
		m.recorded = append(m.recorded, st)
	}
}

// syncSimProfile rebuilds the demo sim when the backend switched the
// active profile while we were following a stream.
func (m *Model) syncSimProfile() {
	p := world.Get(m.arb.Profile())
	if p.World != m.sim.State().World {
		m.sim = localsim.New(p, m.seed)
		m.tracker.Reset()
	}
}

func (m *Model) simProfileKey() string {
	// The sim carries no key; compare by extent, which is unique enough
	// across the catalog to detect a switch.
	for _, k := range world.Keys() {
		if world.Get(k).World == m.sim.State().World {
			return k
		}
	}
	return ""
}

func (m *Model) cycleProfile() {
	if m.mode == ModeReplay {
		return
	}
	keys := world.Keys()
	current := m.simProfileKey()
	next := keys[0]
	for i, k := range keys {
		if k == current {
			next = keys[(i+1)%len(keys)]
			break
		}
	}
	m.sim = localsim.New(world.Get(next), m.seed)
	m.tracker.Reset()
	if m.arb != nil {
		m.arb.SetProfile(next)
	}
	m.notice = "profile: " + next
}

func (m *Model) toggleRecording() {
	if m.recording {
		m.recording = false
		if len(m.recorded) > 0 && m.store != nil {
			profile := "replay"
			if m.arb != nil {
				profile = m.arb.Profile()
			} else if m.sim != nil {
				profile = m.simProfileKey()
			}
			runID, err := m.store.Save(profile, m.lastSrc.String(), m.recorded)
			if err != nil {
				m.notice = "record failed: " + err.Error()
			} else {
				m.notice = fmt.Sprintf("saved %d frames as %s", len(m.recorded), runID)
			}
		}
		m.recorded = nil
		return
	}
	if m.store == nil {
		m.notice = "recording unavailable"
		return
	}
	m.recording = true
	m.recorded = make([]world.SimulationState, 0, 1024)
	m.notice = "recording..."
}

// View renders the canvas and the stats panel side by side.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.pipeline.Frame(m.lastState))
	statsView := statsStyle.Render(m.statsPanel())
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return m.helpOverlay() + "\n" + main
	}
	return main
}

func (m Model) statsPanel() string {
	t := m.theme
	st := m.lastState
	var s strings.Builder

	s.WriteString(t.header("ROBOVIZ") + "\n")
	s.WriteString(t.statusStyle(m.lastSrc.String()).Render(m.statusLine()) + "\n\n")

	if m.mode == ModeWatch {
		tel := m.arb.Telemetry()
		if tel.TotalSteps > 0 {
			ratio := float64(tel.CompletedSteps) / float64(tel.TotalSteps)
			s.WriteString(t.label("Progress") + t.ProgressBar(ratio, 20) + "\n")
			s.WriteString(t.label("Steps") + t.value(fmt.Sprintf("%d / %d", tel.CompletedSteps, tel.TotalSteps)) + "\n")
		}
		if tel.Episode > 0 || tel.Reward != 0 {
			s.WriteString(t.label("Episode") + t.value(fmt.Sprintf("%d", tel.Episode)) + "\n")
		}
	}

	s.WriteString(t.label("Reward") + t.value(fmt.Sprintf("%.2f", st.Reward)) + "\n")
	s.WriteString(t.label("Episodes") + t.value(fmt.Sprintf("%d", st.EpisodeCount)) + "\n")
	s.WriteString(t.label("Collisions") + t.value(fmt.Sprintf("%.0f", m.tracker.Collisions.Value())) + "\n")
	s.WriteString(t.label("Clearance") + t.value(fmt.Sprintf("%.2f %s", m.tracker.Clearance.Value(), m.closestDirection())) + "\n")
	if st.MovementModel != "" {
		s.WriteString(t.label("Drive") + t.value(string(st.MovementModel)) + "\n")
	}

	if series := m.tracker.Reward.Series(); len(series) > 1 {
		chart := asciigraph.Plot(series,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("reward"))
		s.WriteString("\n" + chart + "\n")
	}

	if m.mode == ModeReplay {
		s.WriteString("\n" + t.label("Frame") +
			t.value(fmt.Sprintf("%d / %d", m.ticker.Position()+1, m.ticker.Len())) + "\n")
	}

	if m.notice != "" {
		s.WriteString("\n" + t.value(m.notice) + "\n")
	}

	s.WriteString(helpStyle.Render("\nSP:Pause T:Theme R:Record\nP:Profile ?:Help Q:Quit"))
	return s.String()
}

func (m Model) statusLine() string {
	status := strings.ToUpper(m.lastSrc.String())
	if m.paused {
		status += " · PAUSED"
	}
	if m.recording {
		status += " · REC"
	}
	if m.mode == ModeReplay && m.ticker.Done() {
		status += " · END"
	}
	return status
}

// closestDirection labels where the nearest obstacle sits relative to
// the heading, based on the smallest sensor reading.
func (m Model) closestDirection() string {
	st := m.lastState
	angles := st.SensorAngles()
	if len(angles) == 0 || len(angles) != len(st.SensorDistances) {
		return ""
	}
	minIdx, minVal := 0, math.Inf(1)
	for i, d := range st.SensorDistances {
		if d < minVal {
			minIdx, minVal = i, d
		}
	}
	if minVal >= 1 {
		return "clear"
	}
	return directionLabel(angles[minIdx])
}

func directionLabel(rel float64) string {
	rel = math.Mod(rel, 360)
	if rel > 180 {
		rel -= 360
	}
	if rel < -180 {
		rel += 360
	}
	switch {
	case rel >= -30 && rel < 30:
		return "ahead"
	case rel >= 30 && rel <= 150:
		return "right"
	case rel < -30 && rel >= -150:
		return "left"
	default:
		return "behind"
	}
}

func (m Model) helpOverlay() string {
	return `
  Space  pause / resume
  T      cycle theme
  R      toggle frame recording (saved as JSON on stop)
  P      cycle environment profile
  Enter  restart replay
  ?      toggle this help
  Q      quit`
}
