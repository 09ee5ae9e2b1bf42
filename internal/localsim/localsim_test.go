package localsim

import (
	"testing"

	"github.com/san-kum/roboviz/internal/geom"
	"github.com/san-kum/roboviz/internal/world"
)

func TestStep_AdvancesPose(t *testing.T) {
	s := New(world.Get("arena_basic"), 1)
	before := s.State().Pose

	after := s.Step(16.6).Pose
	if before.X == after.X && before.Y == after.Y {
		t.Error("expected the robot to move")
	}
}

func TestStep_ZeroDtIsNoop(t *testing.T) {
	s := New(world.Get("arena_basic"), 1)
	before := s.State()

	after := s.Step(0)
	if before.Pose != after.Pose {
		t.Errorf("dt=0 must not move the robot: %+v vs %+v", before.Pose, after.Pose)
	}
}

func TestStep_StaysInsideWorld(t *testing.T) {
	p := world.Get("corridor_sprint")
	s := New(p, 42)

	for i := 0; i < 2000; i++ {
		st := s.Step(16.6)
		if geom.Collides(st.Pose.X, st.Pose.Y, st.RobotRadius,
			st.World.Width, st.World.Height, st.World.WallMargin, st.Obstacles) {
			t.Fatalf("step %d: robot resting inside a wall at (%.1f, %.1f)", i, st.Pose.X, st.Pose.Y)
		}
	}
}

func TestStep_SensorsMatchRayCount(t *testing.T) {
	p := world.Get("warehouse_dense")
	s := New(p, 7)

	st := s.Step(16.6)
	if len(st.SensorDistances) != p.Sensor.RayCount {
		t.Fatalf("expected %d sensor readings, got %d", p.Sensor.RayCount, len(st.SensorDistances))
	}
	for i, d := range st.SensorDistances {
		if d < 0 || d > 1 {
			t.Errorf("reading %d out of range: %f", i, d)
		}
	}
}

func TestStep_DeterministicPerSeed(t *testing.T) {
	a := New(world.Get("arena_basic"), 99)
	b := New(world.Get("arena_basic"), 99)

	for i := 0; i < 200; i++ {
		sa := a.Step(16.6)
		sb := b.Step(16.6)
		if sa.Pose != sb.Pose {
			t.Fatalf("step %d diverged: %+v vs %+v", i, sa.Pose, sb.Pose)
		}
	}
}

func TestStep_BounceKicksHeadingFixed45(t *testing.T) {
	s := New(world.Get("arena_basic"), 3)
	// A zero turn rate pins the rotation (and its drift) at zero, so the
	// only heading change left is the bounce kick itself.
	s.profile.Robot.TurnRateDegrees = 0
	s.rotation = 0
	s.state.Pose = world.Pose{
		X:            s.state.World.WallMargin + s.state.RobotRadius + 1,
		Y:            240,
		AngleDegrees: 180,
	}

	st := s.Step(16.6)
	if !st.Collision {
		t.Fatal("driving into the wall must collide")
	}
	if st.Pose.AngleDegrees != 225 {
		t.Errorf("expected a fixed 45 degree kick to heading 225, got %f", st.Pose.AngleDegrees)
	}
}

func TestCheckGoal_CaptureRespawnsGoal(t *testing.T) {
	s := New(world.Get("goal_chase"), 5)

	// Park the goal on top of the robot.
	g := *s.state.Goal
	g.X, g.Y = s.state.Pose.X, s.state.Pose.Y
	s.state.Goal = &g

	s.checkGoal()

	st := s.State()
	if st.EpisodeCount != 1 {
		t.Errorf("expected episode count 1, got %d", st.EpisodeCount)
	}
	if st.Reward != 1 {
		t.Errorf("expected reward 1, got %f", st.Reward)
	}
	dx := st.Goal.X - st.Pose.X
	dy := st.Goal.Y - st.Pose.Y
	reach := st.Goal.Radius + st.RobotRadius
	if dx*dx+dy*dy <= reach*reach {
		t.Error("goal must respawn away from the robot")
	}
	m := st.World.WallMargin
	if st.Goal.X < m || st.Goal.X > st.World.Width-m ||
		st.Goal.Y < m || st.Goal.Y > st.World.Height-m {
		t.Errorf("goal respawned outside the arena: (%.1f, %.1f)", st.Goal.X, st.Goal.Y)
	}
}

func TestCheckGoal_NoGoalProfile(t *testing.T) {
	s := New(world.Get("arena_basic"), 5)
	s.checkGoal()
	if s.State().EpisodeCount != 0 {
		t.Error("profiles without a goal must not score")
	}
}
