package world

import (
	"sort"

	"github.com/san-kum/roboviz/internal/geom"
)

// SensorConfig is the per-profile default sensor layout.
type SensorConfig struct {
	RayCount      int            `yaml:"ray_count"`
	RayLength     float64        `yaml:"ray_length"`
	RayFovDegrees float64        `yaml:"ray_fov_degrees"`
	Placement     geom.Placement `yaml:"placement"`
}

// RobotConfig is the per-profile robot body and motion tuning.
type RobotConfig struct {
	Radius          float64 `yaml:"radius"`
	Speed           float64 `yaml:"speed"`
	TurnRateDegrees float64 `yaml:"turn_rate_degrees"`
}

// Profile is one environment preset: world geometry, sensor defaults, robot
// tuning, and the visual theme the canvas draws with.
type Profile struct {
	Key         string
	Label       string
	Description string
	World       Extent
	Obstacles   []geom.Rect
	Goal        *Goal
	Sensor      SensorConfig
	Robot       RobotConfig
	Visual      Visual
	Model       MovementModel
}

// Profiles mirrors the backend environment catalog so demo and replay modes
// render the same arenas the trainer uses.
var Profiles = map[string]Profile{
	"arena_basic": {
		Label:       "Arena Basic",
		Description: "Balanced obstacle arena for baseline experiments.",
		World:       Extent{Width: 640, Height: 480, WallMargin: 20},
		Obstacles: []geom.Rect{
			{X: 180, Y: 140, Width: 120, Height: 30},
			{X: 440, Y: 260, Width: 60, Height: 140},
			{X: 140, Y: 360, Width: 160, Height: 40},
		},
		Sensor: SensorConfig{RayCount: 8, RayLength: 140, RayFovDegrees: 120},
		Robot:  RobotConfig{Radius: 15, Speed: 130, TurnRateDegrees: 12},
		Visual: Visual{
			Background: "#0f172a", Wall: "#1e293b", Obstacle: "#1f2937",
			Robot: "#22c55e", RobotCollision: "#ef4444", Ray: "#38bdf8",
		},
		Model: ModelDifferential,
	},
	"warehouse_dense": {
		Label:       "Warehouse Dense",
		Description: "High-obstacle layout for difficult navigation and collision avoidance.",
		World:       Extent{Width: 760, Height: 520, WallMargin: 24},
		Obstacles: []geom.Rect{
			{X: 120, Y: 100, Width: 180, Height: 36},
			{X: 360, Y: 90, Width: 70, Height: 170},
			{X: 500, Y: 140, Width: 180, Height: 40},
			{X: 170, Y: 260, Width: 80, Height: 180},
			{X: 320, Y: 300, Width: 230, Height: 45},
			{X: 610, Y: 280, Width: 60, Height: 160},
		},
		Sensor: SensorConfig{RayCount: 12, RayLength: 170, RayFovDegrees: 180},
		Robot:  RobotConfig{Radius: 14, Speed: 120, TurnRateDegrees: 10},
		Visual: Visual{
			Background: "#0b1320", Wall: "#334155", Obstacle: "#374151",
			Robot: "#14b8a6", RobotCollision: "#f97316", Ray: "#2dd4bf",
		},
		Model: ModelDifferential,
	},
	"corridor_sprint": {
		Label:       "Corridor Sprint",
		Description: "Narrow corridors with longer sensor range and faster robot motion.",
		World:       Extent{Width: 840, Height: 460, WallMargin: 18},
		Obstacles: []geom.Rect{
			{X: 180, Y: 40, Width: 45, Height: 320},
			{X: 340, Y: 120, Width: 45, Height: 322},
			{X: 520, Y: 20, Width: 45, Height: 300},
			{X: 690, Y: 130, Width: 45, Height: 312},
		},
		Sensor: SensorConfig{RayCount: 16, RayLength: 220, RayFovDegrees: 220},
		Robot:  RobotConfig{Radius: 13, Speed: 170, TurnRateDegrees: 8},
		Visual: Visual{
			Background: "#111827", Wall: "#475569", Obstacle: "#64748b",
			Robot: "#38bdf8", RobotCollision: "#fb7185", Ray: "#60a5fa",
		},
		Model: ModelDifferential,
	},
	"flat_ground_differential_v1": {
		Label:       "Flat Ground Differential (V1)",
		Description: "Flat-ground baseline using differential-drive dynamics with real-world scenarios.",
		World:       Extent{Width: 720, Height: 520, WallMargin: 20},
		Obstacles: []geom.Rect{
			{X: 150, Y: 80, Width: 180, Height: 28},
			{X: 150, Y: 80, Width: 28, Height: 150},
			{X: 380, Y: 180, Width: 28, Height: 90},
			{X: 380, Y: 320, Width: 28, Height: 90},
			{X: 500, Y: 120, Width: 70, Height: 45},
			{X: 560, Y: 260, Width: 60, Height: 60},
			{X: 220, Y: 350, Width: 85, Height: 50},
			{X: 420, Y: 420, Width: 50, Height: 50},
		},
		Sensor: SensorConfig{RayCount: 12, RayLength: 180, RayFovDegrees: 200},
		Robot:  RobotConfig{Radius: 14, Speed: 140, TurnRateDegrees: 11},
		Visual: Visual{
			Background: "#0f172a", Wall: "#475569", Obstacle: "#334155",
			Robot: "#22c55e", RobotCollision: "#ef4444", Ray: "#38bdf8",
		},
		Model: ModelDifferential,
	},
	"flat_ground_ackermann_v1": {
		Label:       "Flat Ground Ackermann (V1)",
		Description: "Flat-ground profile tuned for ackermann-like steering with parking lot scenarios.",
		World:       Extent{Width: 760, Height: 520, WallMargin: 20},
		Obstacles: []geom.Rect{
			{X: 120, Y: 100, Width: 90, Height: 42},
			{X: 240, Y: 100, Width: 90, Height: 42},
			{X: 360, Y: 100, Width: 90, Height: 42},
			{X: 150, Y: 260, Width: 200, Height: 28},
			{X: 420, Y: 260, Width: 200, Height: 28},
			{X: 550, Y: 370, Width: 40, Height: 40},
			{X: 180, Y: 380, Width: 40, Height: 40},
			{X: 620, Y: 150, Width: 32, Height: 220},
		},
		Sensor: SensorConfig{RayCount: 14, RayLength: 200, RayFovDegrees: 200},
		Robot:  RobotConfig{Radius: 13, Speed: 150, TurnRateDegrees: 10},
		Visual: Visual{
			Background: "#111827", Wall: "#6b7280", Obstacle: "#4b5563",
			Robot: "#38bdf8", RobotCollision: "#ef4444", Ray: "#3b82f6",
		},
		Model: ModelAckermann,
	},
	"flat_ground_rover_v1": {
		Label:       "Flat Ground Rover (V1)",
		Description: "Flat-ground profile tuned for rover-style skid steering with warehouse scenarios.",
		World:       Extent{Width: 760, Height: 540, WallMargin: 22},
		Obstacles: []geom.Rect{
			{X: 100, Y: 110, Width: 140, Height: 42},
			{X: 100, Y: 190, Width: 140, Height: 42},
			{X: 100, Y: 270, Width: 140, Height: 42},
			{X: 320, Y: 140, Width: 75, Height: 60},
			{X: 420, Y: 140, Width: 60, Height: 75},
			{X: 540, Y: 90, Width: 110, Height: 48},
			{X: 540, Y: 320, Width: 110, Height: 48},
			{X: 280, Y: 380, Width: 90, Height: 45},
			{X: 410, Y: 380, Width: 90, Height: 45},
			{X: 360, Y: 260, Width: 50, Height: 50},
		},
		Sensor: SensorConfig{RayCount: 16, RayLength: 195, RayFovDegrees: 220},
		Robot:  RobotConfig{Radius: 15, Speed: 135, TurnRateDegrees: 12},
		Visual: Visual{
			Background: "#1f2937", Wall: "#6b7280", Obstacle: "#4b5563",
			Robot: "#f59e0b", RobotCollision: "#ef4444", Ray: "#f59e0b",
		},
		Model: ModelRover,
	},
	"goal_chase": {
		Label:       "Goal Chase",
		Description: "Navigate to the glowing goal target. Ideal for testing goal-seeking behaviour.",
		World:       Extent{Width: 620, Height: 480, WallMargin: 22},
		Obstacles: []geom.Rect{
			{X: 150, Y: 100, Width: 80, Height: 30},
			{X: 350, Y: 180, Width: 30, Height: 130},
			{X: 200, Y: 330, Width: 130, Height: 30},
			{X: 420, Y: 80, Width: 60, Height: 60},
		},
		Goal:   &Goal{X: 520, Y: 380, Radius: 20},
		Sensor: SensorConfig{RayCount: 12, RayLength: 180, RayFovDegrees: 240},
		Robot:  RobotConfig{Radius: 13, Speed: 130, TurnRateDegrees: 11},
		Visual: Visual{
			Background: "#0f172a", Wall: "#334155", Obstacle: "#1f2937",
			Robot: "#22c55e", RobotCollision: "#ef4444", Ray: "#38bdf8", Goal: "#ef4444",
		},
		Model: ModelDifferential,
	},
	"apple_field": {
		Label:       "Apple Field",
		Description: "Open field with minimal obstacles and a randomized goal target.",
		World:       Extent{Width: 640, Height: 480, WallMargin: 20},
		Obstacles: []geom.Rect{
			{X: 200, Y: 160, Width: 60, Height: 60},
			{X: 380, Y: 280, Width: 60, Height: 60},
		},
		Goal:   &Goal{X: 540, Y: 400, Radius: 22},
		Sensor: SensorConfig{RayCount: 12, RayLength: 200, RayFovDegrees: 360},
		Robot:  RobotConfig{Radius: 13, Speed: 130, TurnRateDegrees: 12},
		Visual: Visual{
			Background: "#0f2a1a", Wall: "#14532d", Obstacle: "#166534",
			Robot: "#4ade80", RobotCollision: "#ef4444", Ray: "#4ade80", Goal: "#ef4444",
		},
		Model: ModelDifferential,
	},
}

// DefaultProfile is used when an unknown key is requested, matching the
// backend's fallback behavior.
const DefaultProfile = "arena_basic"

// Get returns the named profile, falling back to arena_basic.
func Get(key string) Profile {
	p, ok := Profiles[key]
	if !ok {
		p = Profiles[DefaultProfile]
		key = DefaultProfile
	}
	p.Key = key
	return p
}

// Keys returns all profile keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(Profiles))
	for k := range Profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot builds a SimulationState seeded from the profile defaults with
// the robot at the world center. Sensor distances are left for the caller
// (local physics) to fill in.
func (p Profile) Snapshot() SimulationState {
	visual := p.Visual
	placement := p.Sensor.Placement
	if placement == "" {
		placement = geom.PlacementCustom
	}
	return SimulationState{
		Pose:          Pose{X: p.World.Width / 2, Y: p.World.Height / 2},
		World:         p.World,
		Obstacles:     p.Obstacles,
		Goal:          p.Goal,
		RobotRadius:   p.Robot.Radius,
		Visual:        &visual,
		MovementModel: p.Model,
		RayCount:      p.Sensor.RayCount,
		RayLength:     p.Sensor.RayLength,
		RayFovDegrees: p.Sensor.RayFovDegrees,
		RayPlacement:  placement,
	}
}
