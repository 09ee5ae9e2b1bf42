package world

import "testing"

func TestGet_KnownProfile(t *testing.T) {
	p := Get("warehouse_dense")
	if p.Key != "warehouse_dense" {
		t.Errorf("expected key warehouse_dense, got %s", p.Key)
	}
	if p.Sensor.RayCount != 12 {
		t.Errorf("expected 12 rays, got %d", p.Sensor.RayCount)
	}
	if len(p.Obstacles) != 6 {
		t.Errorf("expected 6 obstacles, got %d", len(p.Obstacles))
	}
}

func TestGet_UnknownFallsBack(t *testing.T) {
	p := Get("does_not_exist")
	if p.Key != DefaultProfile {
		t.Errorf("expected fallback to %s, got %s", DefaultProfile, p.Key)
	}
}

func TestKeys_SortedAndComplete(t *testing.T) {
	keys := Keys()
	if len(keys) != len(Profiles) {
		t.Fatalf("expected %d keys, got %d", len(Profiles), len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("keys not sorted: %s before %s", keys[i-1], keys[i])
		}
	}
}

func TestSnapshot_SeedsFromProfile(t *testing.T) {
	p := Get("goal_chase")
	s := p.Snapshot()

	if s.Pose.X != p.World.Width/2 || s.Pose.Y != p.World.Height/2 {
		t.Error("snapshot must start at the world center")
	}
	if s.Goal == nil {
		t.Fatal("goal_chase snapshot must carry the goal")
	}
	if s.Goal.X != 520 || s.Goal.Y != 380 {
		t.Errorf("unexpected goal position: %+v", s.Goal)
	}
	if s.MovementModel != ModelDifferential {
		t.Errorf("unexpected movement model: %s", s.MovementModel)
	}
}

func TestSensorAngles_PrefersAbsolute(t *testing.T) {
	s := SimulationState{
		Pose:            Pose{AngleDegrees: 90},
		SensorAnglesAbs: []float64{90, 180},
	}
	rel := s.SensorAngles()
	if len(rel) != 2 || rel[0] != 0 || rel[1] != 90 {
		t.Errorf("expected relative angles [0 90], got %v", rel)
	}
}

func TestSensorAngles_FanFromConfig(t *testing.T) {
	s := SimulationState{
		RayCount:      5,
		RayFovDegrees: 120,
	}
	rel := s.SensorAngles()
	if len(rel) != 5 {
		t.Fatalf("expected 5 angles, got %d", len(rel))
	}
	if rel[0] != -60 || rel[4] != 60 {
		t.Errorf("expected fan spanning [-60, 60], got %v", rel)
	}
}
