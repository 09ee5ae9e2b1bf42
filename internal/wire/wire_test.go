package wire

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/roboviz/internal/world"
)

const previewFrame = `{
	"x": 320.5, "y": 240.25, "angle": 45.0,
	"collision": false, "reward": 0.1, "episode_count": 3,
	"sensor_distances": [0.5, 1.0, 0.25],
	"ray_count": 3, "ray_length": 140.0, "ray_fov_degrees": 120.0,
	"world_width": 640, "world_height": 480, "wall_margin": 20.0,
	"robot_radius": 15.0,
	"obstacles": [{"x": 180, "y": 140, "width": 120, "height": 30}],
	"goal_x": 520.0, "goal_y": 380.0, "goal_radius": 20.0,
	"flat_ground_model": "differential",
	"visual": {"bg": "#0f172a", "robot": "#22c55e"}
}`

func TestDecodePreview(t *testing.T) {
	st, ok := DecodePreview([]byte(previewFrame))
	require.True(t, ok)

	assert.Equal(t, 320.5, st.Pose.X)
	assert.Equal(t, 45.0, st.Pose.AngleDegrees)
	assert.Equal(t, []float64{0.5, 1.0, 0.25}, st.SensorDistances)
	assert.Equal(t, 640.0, st.World.Width)
	assert.Len(t, st.Obstacles, 1)
	require.NotNil(t, st.Goal)
	assert.Equal(t, 520.0, st.Goal.X)
	assert.Equal(t, world.ModelDifferential, st.MovementModel)
	require.NotNil(t, st.Visual)
	assert.Equal(t, "#22c55e", st.Visual.Robot)
}

func TestDecodePreview_Malformed(t *testing.T) {
	cases := []string{
		``,
		`{`,
		`not json`,
		`[1,2,3]`,
		`{"x": "oops"}`,
	}
	for _, raw := range cases {
		_, ok := DecodePreview([]byte(raw))
		assert.False(t, ok, "payload %q must be rejected", raw)
	}
}

func TestDecodePreview_NoWorldExtent(t *testing.T) {
	_, ok := DecodePreview([]byte(`{"x": 1, "y": 2}`))
	assert.False(t, ok, "snapshot without world extent is not drawable")
}

func TestDecodeTraining(t *testing.T) {
	raw := `{
		"completed_steps": 1500, "total_steps": 10000,
		"episode": 7, "reward": 12.5,
		"env_state": ` + previewFrame + `
	}`
	frame, ok := DecodeTraining([]byte(raw))
	require.True(t, ok)

	assert.Equal(t, 1500, frame.CompletedSteps)
	assert.Equal(t, 10000, frame.TotalSteps)
	assert.Equal(t, 7, frame.Episode)
	assert.True(t, frame.HasEnvState())
	assert.Equal(t, 320.5, frame.EnvState.X)
}

func TestDecodeTraining_EmptyEnvState(t *testing.T) {
	raw := `{"completed_steps": 10, "total_steps": 10000, "episode": 0, "reward": 0, "env_state": {}}`
	frame, ok := DecodeTraining([]byte(raw))
	require.True(t, ok)
	assert.False(t, frame.HasEnvState(), "empty env_state carries telemetry only")
}

func TestDecodePreview_RaysFieldFallback(t *testing.T) {
	raw := `{"x": 1, "y": 2, "angle": 0, "rays": [0.9, 0.8],
		"world_width": 640, "world_height": 480}`
	st, ok := DecodePreview([]byte(raw))
	require.True(t, ok)
	assert.Equal(t, []float64{0.9, 0.8}, st.SensorDistances)
}

func TestRecording_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	st, ok := DecodePreview([]byte(previewFrame))
	require.True(t, ok)
	frames := []world.SimulationState{st, st}

	require.NoError(t, SaveRecording(path, frames))

	loaded, err := LoadRecording(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, st.Pose, loaded[0].Pose)
	assert.Equal(t, st.World, loaded[0].World)
	require.NotNil(t, loaded[0].Goal)
	assert.Equal(t, st.Goal.Radius, loaded[0].Goal.Radius)
}

func TestLoadRecording_SkipsBlankFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	raw := `[{"x": 1, "y": 2}, ` + previewFrame + `]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	frames, err := LoadRecording(path)
	require.NoError(t, err)
	assert.Len(t, frames, 1)
}

func TestLoadRecording_MissingFile(t *testing.T) {
	_, err := LoadRecording(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
