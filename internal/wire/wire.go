// Package wire decodes inbound stream payloads into simulation snapshots.
//
// The backend owns the exact wire format; this package only normalizes it.
// Malformed payloads decode to (zero, false) and are never surfaced as
// errors — the render loop must keep drawing whatever state it already has.
package wire

import (
	"encoding/json"
	"os"

	"github.com/san-kum/roboviz/internal/geom"
	"github.com/san-kum/roboviz/internal/world"
)

// Snapshot is the flattened per-frame state the backend emits: the preview
// stream sends it at top level, the training stream nests it as env_state.
type Snapshot struct {
	X               float64       `json:"x"`
	Y               float64       `json:"y"`
	Angle           float64       `json:"angle"`
	Collision       bool          `json:"collision"`
	Reward          float64       `json:"reward"`
	EpisodeCount    int           `json:"episode_count"`
	SensorDistances []float64     `json:"sensor_distances"`
	Rays            []float64     `json:"rays"`
	RayCount        int           `json:"ray_count"`
	RayLength       float64       `json:"ray_length"`
	RayFovDegrees   float64       `json:"ray_fov_degrees"`
	RayPlacement    string        `json:"ray_placement,omitempty"`
	SensorAnglesAbs []float64     `json:"sensor_angles_abs,omitempty"`
	WorldWidth      float64       `json:"world_width"`
	WorldHeight     float64       `json:"world_height"`
	WallMargin      float64       `json:"wall_margin"`
	RobotRadius     float64       `json:"robot_radius"`
	Obstacles       []geom.Rect   `json:"obstacles"`
	GoalX           *float64      `json:"goal_x"`
	GoalY           *float64      `json:"goal_y"`
	GoalRadius      *float64      `json:"goal_radius"`
	FlatGroundModel string        `json:"flat_ground_model"`
	Visual          *world.Visual `json:"visual"`
}

// TrainingFrame is one training-stream message: progress telemetry plus an
// embedded environment snapshot for canvas rendering. Early in a run the
// snapshot may be empty while telemetry is already flowing.
type TrainingFrame struct {
	CompletedSteps int      `json:"completed_steps"`
	TotalSteps     int      `json:"total_steps"`
	Episode        int      `json:"episode"`
	Reward         float64  `json:"reward"`
	EnvState       Snapshot `json:"env_state"`
}

// HasEnvState reports whether the embedded snapshot carries a drawable
// world.
func (f TrainingFrame) HasEnvState() bool {
	return f.EnvState.WorldWidth > 0 && f.EnvState.WorldHeight > 0
}

// DecodeTraining parses a training-stream message. ok is false on malformed
// JSON; the caller drops the frame silently.
func DecodeTraining(data []byte) (TrainingFrame, bool) {
	var frame TrainingFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return TrainingFrame{}, false
	}
	return frame, true
}

// DecodePreview parses a preview-stream message into a SimulationState.
// ok is false on malformed JSON or a snapshot with no world extent.
func DecodePreview(data []byte) (world.SimulationState, bool) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return world.SimulationState{}, false
	}
	if snap.WorldWidth <= 0 || snap.WorldHeight <= 0 {
		return world.SimulationState{}, false
	}
	return snap.State(), true
}

// State converts the wire snapshot into the internal value type.
func (s Snapshot) State() world.SimulationState {
	distances := s.SensorDistances
	if len(distances) == 0 {
		distances = s.Rays
	}

	var goal *world.Goal
	if s.GoalX != nil && s.GoalY != nil && s.GoalRadius != nil {
		goal = &world.Goal{X: *s.GoalX, Y: *s.GoalY, Radius: *s.GoalRadius}
	}

	placement := geom.Placement(s.RayPlacement)
	if placement == "" {
		placement = geom.PlacementCustom
	}

	return world.SimulationState{
		Pose:            world.Pose{X: s.X, Y: s.Y, AngleDegrees: s.Angle},
		SensorDistances: distances,
		SensorAnglesAbs: s.SensorAnglesAbs,
		World:           world.Extent{Width: s.WorldWidth, Height: s.WorldHeight, WallMargin: s.WallMargin},
		Obstacles:       s.Obstacles,
		Goal:            goal,
		RobotRadius:     s.RobotRadius,
		Visual:          s.Visual,
		MovementModel:   world.MovementModel(s.FlatGroundModel),
		Collision:       s.Collision,
		Reward:          s.Reward,
		EpisodeCount:    s.EpisodeCount,
		RayCount:        s.RayCount,
		RayLength:       s.RayLength,
		RayFovDegrees:   s.RayFovDegrees,
		RayPlacement:    placement,
	}
}

// FromState converts an internal state back to the wire shape, used when
// saving recordings so replay files stay compatible with backend dumps.
func FromState(st world.SimulationState) Snapshot {
	snap := Snapshot{
		X:               st.Pose.X,
		Y:               st.Pose.Y,
		Angle:           st.Pose.AngleDegrees,
		Collision:       st.Collision,
		Reward:          st.Reward,
		EpisodeCount:    st.EpisodeCount,
		SensorDistances: st.SensorDistances,
		RayCount:        st.RayCount,
		RayLength:       st.RayLength,
		RayFovDegrees:   st.RayFovDegrees,
		RayPlacement:    string(st.RayPlacement),
		SensorAnglesAbs: st.SensorAnglesAbs,
		WorldWidth:      st.World.Width,
		WorldHeight:     st.World.Height,
		WallMargin:      st.World.WallMargin,
		RobotRadius:     st.RobotRadius,
		Obstacles:       st.Obstacles,
		FlatGroundModel: string(st.MovementModel),
		Visual:          st.Visual,
	}
	if st.Goal != nil {
		x, y, r := st.Goal.X, st.Goal.Y, st.Goal.Radius
		snap.GoalX, snap.GoalY, snap.GoalRadius = &x, &y, &r
	}
	return snap
}

// LoadRecording reads a JSON array of snapshots for test playback. Frames
// without a world extent are skipped.
func LoadRecording(path string) ([]world.SimulationState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snaps []Snapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return nil, err
	}
	frames := make([]world.SimulationState, 0, len(snaps))
	for _, snap := range snaps {
		if snap.WorldWidth <= 0 || snap.WorldHeight <= 0 {
			continue
		}
		frames = append(frames, snap.State())
	}
	return frames, nil
}

// SaveRecording writes frames as a JSON snapshot array.
func SaveRecording(path string, frames []world.SimulationState) error {
	snaps := make([]Snapshot, len(frames))
	for i, f := range frames {
		snaps[i] = FromState(f)
	}
	data, err := json.MarshalIndent(snaps, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
