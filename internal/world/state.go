package world

import "github.com/san-kum/roboviz/internal/geom"

// MovementModel selects the robot silhouette drawn on the canvas.
type MovementModel string

const (
	ModelDifferential MovementModel = "differential"
	ModelAckermann    MovementModel = "ackermann"
	ModelRover        MovementModel = "rover"
)

// Pose is the robot position and heading in world units.
type Pose struct {
	X            float64
	Y            float64
	AngleDegrees float64
}

// Extent is the authoritative world size. It may differ from the canvas
// pixel size; rendering rescales with a single uniform factor.
type Extent struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	WallMargin float64 `yaml:"wall_margin"`
}

// Goal is an optional target circle, present only in goal-seeking profiles.
type Goal struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// Visual carries per-profile color overrides as hex strings.
type Visual struct {
	Background     string `json:"bg" yaml:"bg"`
	Wall           string `json:"wall" yaml:"wall"`
	Obstacle       string `json:"obstacle" yaml:"obstacle"`
	Ray            string `json:"ray" yaml:"ray"`
	Robot          string `json:"robot" yaml:"robot"`
	RobotCollision string `json:"robot_collision" yaml:"robot_collision"`
	Goal           string `json:"goal" yaml:"goal"`
	// RobotShape overrides the silhouette picked from the movement
	// model (circle, oval, square, triangle, pentagon, hexagon,
	// rectangle, tracked, ackermann, rover).
	RobotShape string `json:"robot_shape" yaml:"robot_shape"`
}

// SimulationState is one value snapshot of the simulation. Snapshots are
// replaced wholesale on every update and never mutated in place or merged
// with a prior snapshot.
type SimulationState struct {
	Pose            Pose
	SensorDistances []float64
	// SensorAnglesAbs holds absolute world-space ray angles when the
	// backend supplies fixed per-ray placements; nil in FOV fan mode.
	SensorAnglesAbs []float64
	World           Extent
	Obstacles       []geom.Rect
	Goal            *Goal
	RobotRadius     float64
	Visual          *Visual
	MovementModel   MovementModel
	Collision       bool
	Reward          float64
	EpisodeCount    int
	RayCount        int
	RayLength       float64
	RayFovDegrees   float64
	RayPlacement    geom.Placement
}

// SensorAngles returns the per-ray azimuths relative to the heading,
// preferring explicit backend-supplied absolute angles over the generated
// placement fan.
func (s *SimulationState) SensorAngles() []float64 {
	if len(s.SensorAnglesAbs) > 0 {
		rel := make([]float64, len(s.SensorAnglesAbs))
		for i, abs := range s.SensorAnglesAbs {
			rel[i] = abs - s.Pose.AngleDegrees
		}
		return rel
	}
	n := s.RayCount
	if n == 0 {
		n = len(s.SensorDistances)
	}
	placement := s.RayPlacement
	if placement == "" {
		placement = geom.PlacementCustom
	}
	return geom.PlacementAngles(placement, n, s.RayFovDegrees)
}
