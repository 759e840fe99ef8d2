package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/projsim/internal/ballistics"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Track is one labelled trajectory of a run, such as "user" or "optimal".
type Track struct {
	Label      string
	Trajectory *ballistics.Trajectory
}

type TrackSummary struct {
	Label   string  `json:"label"`
	Angle   float64 `json:"angle"`
	Range   float64 `json:"range"`
	Landed  bool    `json:"landed"`
	Samples int     `json:"samples"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Object    string             `json:"object"`
	Params    ballistics.Params  `json:"params"`
	Tracks    []TrackSummary     `json:"tracks"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Track returns the summary of the named track.
func (m *RunMetadata) Track(label string) (TrackSummary, bool) {
	for _, t := range m.Tracks {
		if t.Label == label {
			return t, true
		}
	}
	return TrackSummary{}, false
}

// Save writes metadata.json plus one <label>.csv per track into a new run
// directory and returns the run id.
func (s *Store) Save(kind, object string, params ballistics.Params, tracks []Track, metrics map[string]float64) (_ string, err error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", kind, now.UnixNano())
	if err := validRunID(runID); err != nil {
		return "", err
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	meta := RunMetadata{
		ID:        runID,
		Kind:      kind,
		Timestamp: now,
		Object:    object,
		Params:    params,
		Tracks:    make([]TrackSummary, 0, len(tracks)),
		Metrics:   metrics,
	}

	for _, t := range tracks {
		if err := validLabel(t.Label); err != nil {
			return "", err
		}
		if err := s.writeTrack(runDir, t); err != nil {
			return "", fmt.Errorf("write track %s: %w", t.Label, err)
		}
		meta.Tracks = append(meta.Tracks, TrackSummary{
			Label:   t.Label,
			Angle:   t.Trajectory.Params.Angle,
			Range:   t.Trajectory.Range,
			Landed:  t.Trajectory.Landed,
			Samples: t.Trajectory.Len(),
		})
	}

	if err := writeFile(filepath.Join(runDir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeTrack(runDir string, t Track) error {
	return writeFile(filepath.Join(runDir, t.Label+".csv"), func(w io.Writer) error {
		return WriteCSV(w, t.Trajectory)
	})
}

// writeFile creates path and runs write on it, returning the first of the
// write and close errors.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns all readable runs, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if err := validRunID(runID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory rebuilds a stored track. Params and Landed come from the
// run metadata.
func (s *Store) LoadTrajectory(runID, label string) (*ballistics.Trajectory, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	summary, ok := meta.Track(label)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no track %q", ErrRunNotFound, runID, label)
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, label+".csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", runID, label, err)
	}

	tr := &ballistics.Trajectory{
		Params:  meta.Params.WithAngle(summary.Angle),
		Samples: samples,
		Landed:  summary.Landed,
		Steps:   len(samples) - 1,
	}
	tr.Range = tr.Final().X
	return tr, nil
}

// LoadTracks loads every track of a run in stored order.
func (s *Store) LoadTracks(runID string) (*RunMetadata, []Track, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tracks := make([]Track, 0, len(meta.Tracks))
	for _, t := range meta.Tracks {
		tr, err := s.LoadTrajectory(runID, t.Label)
		if err != nil {
			return nil, nil, err
		}
		tracks = append(tracks, Track{Label: t.Label, Trajectory: tr})
	}
	return meta, tracks, nil
}

// validRunID keeps run ids to a single path element inside the store.
func validRunID(runID string) error {
	if runID == "" || runID == "." || runID == ".." || runID != filepath.Base(runID) {
		return fmt.Errorf("%w: invalid run id %q", ErrRunNotFound, runID)
	}
	return nil
}

func validLabel(label string) error {
	if label == "" || label != filepath.Base(label) || label == "metadata" {
		return fmt.Errorf("invalid track label %q", label)
	}
	return nil
}
