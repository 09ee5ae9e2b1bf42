// Package localsim runs the self-contained demo physics used when no
// backend source is authoritative. It is a visual wanderer, not a trained
// policy: the robot drifts, turns away from walls, and keeps the canvas
// alive.
package localsim

import (
	"math"
	"math/rand"

	"github.com/san-kum/roboviz/internal/geom"
	"github.com/san-kum/roboviz/internal/world"
)

// baseTickMs is the reference frame interval the turn rate is tuned
// against; longer real frames rotate proportionally more.
const baseTickMs = 16.6

// Sim advances one robot through a profile's arena.
type Sim struct {
	profile  world.Profile
	state    world.SimulationState
	segments []geom.Segment
	rotation float64 // degrees per base tick, sign is turn direction
	rng      *rand.Rand
}

// New seeds a simulation from the profile defaults with the robot at the
// world center.
func New(profile world.Profile, seed int64) *Sim {
	s := &Sim{
		profile:  profile,
		state:    profile.Snapshot(),
		rng:      rand.New(rand.NewSource(seed)),
		rotation: profile.Robot.TurnRateDegrees / 4,
	}
	s.segments = geom.WorldSegments(
		profile.World.Width, profile.World.Height,
		profile.World.WallMargin, profile.Obstacles,
	)
	s.refreshSensors()
	return s
}

// State returns the current frame without advancing time.
func (s *Sim) State() world.SimulationState {
	return s.state
}

// Step advances the simulation by dtMs milliseconds and returns the new
// frame.
func (s *Sim) Step(dtMs float64) world.SimulationState {
	if dtMs <= 0 {
		return s.state
	}
	scale := dtMs / baseTickMs

	// Occasional drift keeps the wander from settling into an orbit.
	if s.rng.Float64() < 0.02 {
		s.rotation += (s.rng.Float64() - 0.5) * s.profile.Robot.TurnRateDegrees / 2
		s.rotation = clampAbs(s.rotation, s.profile.Robot.TurnRateDegrees)
	}

	s.state.Pose.AngleDegrees = normalizeDeg(s.state.Pose.AngleDegrees + s.rotation*scale)

	step := s.profile.Robot.Speed * dtMs / 1000
	rad := s.state.Pose.AngleDegrees * math.Pi / 180
	nx := s.state.Pose.X + math.Cos(rad)*step
	ny := s.state.Pose.Y + math.Sin(rad)*step

	w := s.state.World
	if geom.Collides(nx, ny, s.state.RobotRadius, w.Width, w.Height, w.WallMargin, s.state.Obstacles) {
		// Bounce: stay put this frame, flip the turn direction, and kick
		// the heading 45 degrees so the robot does not grind along the
		// surface. The rotation drift above keeps repeats from orbiting.
		s.state.Collision = true
		s.rotation = -s.rotation
		kick := 45.0
		if s.rotation < 0 {
			kick = -kick
		}
		s.state.Pose.AngleDegrees = normalizeDeg(s.state.Pose.AngleDegrees + kick)
	} else {
		s.state.Collision = false
		s.state.Pose.X = nx
		s.state.Pose.Y = ny
	}

	s.refreshSensors()
	s.checkGoal()
	return s.state
}

func (s *Sim) refreshSensors() {
	angles := s.state.SensorAngles()
	s.state.SensorDistances = geom.CastAll(
		s.state.Pose.X, s.state.Pose.Y, s.state.Pose.AngleDegrees,
		angles, s.segments, s.state.RayLength,
	)
}

// checkGoal detects goal capture, scores it, and respawns the goal at a
// random free spot so the demo keeps running.
func (s *Sim) checkGoal() {
	g := s.state.Goal
	if g == nil {
		return
	}
	dx := s.state.Pose.X - g.X
	dy := s.state.Pose.Y - g.Y
	reach := g.Radius + s.state.RobotRadius
	if dx*dx+dy*dy > reach*reach {
		return
	}
	s.state.Reward += 1
	s.state.EpisodeCount++
	s.relocateGoal()
}

func (s *Sim) relocateGoal() {
	w := s.state.World
	g := *s.state.Goal
	for i := 0; i < 32; i++ {
		g.X = w.WallMargin + g.Radius + s.rng.Float64()*(w.Width-2*(w.WallMargin+g.Radius))
		g.Y = w.WallMargin + g.Radius + s.rng.Float64()*(w.Height-2*(w.WallMargin+g.Radius))
		if !geom.Collides(g.X, g.Y, g.Radius, w.Width, w.Height, 0, s.state.Obstacles) {
			break
		}
	}
	s.state.Goal = &g
}

func normalizeDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func clampAbs(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
