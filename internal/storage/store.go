// Package storage manages the on-disk recording catalog. Each run lives
// in its own directory under the base dir with a metadata.json next to
// the frame file, so listings never need to parse full recordings.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/roboviz/internal/wire"
	"github.com/san-kum/roboviz/internal/world"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Profile   string    `json:"profile"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Frames    int       `json:"frames"`
	Episodes  int       `json:"episodes"`
	Reward    float64   `json:"reward"`
}

// Save writes frames plus metadata and returns the run ID.
func (s *Store) Save(profile, source string, frames []world.SimulationState) (string, error) {
	if len(frames) == 0 {
		return "", fmt.Errorf("storage: no frames to save")
	}
	runID := fmt.Sprintf("%s_%d", profile, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	last := frames[len(frames)-1]
	meta := RunMetadata{
		ID:        runID,
		Profile:   profile,
		Source:    source,
		Timestamp: time.Now(),
		Frames:    len(frames),
		Episodes:  last.EpisodeCount,
		Reward:    last.Reward,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := wire.SaveRecording(filepath.Join(runDir, "frames.json"), frames); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns all run metadata, newest first. A missing base dir is an
// empty catalog, not an error.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Meta loads the metadata for one run.
func (s *Store) Meta(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads the frame buffer for one run.
func (s *Store) LoadFrames(runID string) ([]world.SimulationState, error) {
	return wire.LoadRecording(filepath.Join(s.baseDir, runID, "frames.json"))
}
