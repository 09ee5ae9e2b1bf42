package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBackendURL     = "http://localhost:8000"
	DefaultFPS            = 30
	DefaultTheme          = "minimal"
	DefaultProfile        = "arena_basic"
	DefaultPollIntervalMs = 2000
)

type Config struct {
	Backend BackendConfig `yaml:"backend"`
	FPS     int           `yaml:"fps"`
	Theme   string        `yaml:"theme"`
	Profile string        `yaml:"profile"`
	Sensor  SensorConfig  `yaml:"sensor"`
	Seed    int64         `yaml:"seed"`
}

type BackendConfig struct {
	URL            string `yaml:"url"`
	StatusPath     string `yaml:"status_path"`
	TrainingPath   string `yaml:"training_path"`
	PreviewPath    string `yaml:"preview_path"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
}

// SensorConfig overrides the profile sensor defaults in demo mode. Zero
// values mean "use the profile's setting".
type SensorConfig struct {
	RayCount      int     `yaml:"ray_count"`
	RayLength     float64 `yaml:"ray_length"`
	RayFovDegrees float64 `yaml:"ray_fov_degrees"`
	Placement     string  `yaml:"placement"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:            DefaultBackendURL,
			StatusPath:     "/api/training/status",
			TrainingPath:   "/ws/training",
			PreviewPath:    "/ws/preview",
			PollIntervalMs: DefaultPollIntervalMs,
		},
		FPS:     DefaultFPS,
		Theme:   DefaultTheme,
		Profile: DefaultProfile,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StatusURL is the HTTP endpoint reporting whether training is active.
func (c *Config) StatusURL() string {
	return c.Backend.URL + c.Backend.StatusPath
}

// TrainingURL is the websocket endpoint for the training stream.
func (c *Config) TrainingURL() string {
	return wsScheme(c.Backend.URL) + c.Backend.TrainingPath
}

// PreviewURL is the websocket endpoint for the idle preview stream.
func (c *Config) PreviewURL() string {
	return wsScheme(c.Backend.URL) + c.Backend.PreviewPath
}

// wsScheme rewrites an http(s) base URL to its websocket scheme.
func wsScheme(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return base
	}
}
