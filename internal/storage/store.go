package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/san-kum/windtunnel/internal/aero"
	"github.com/san-kum/windtunnel/internal/config"
)

const (
	KindSingle = "single"
	KindRange  = "range"

	DefaultDir = ".windtunnel"

	metadataFile = "metadata.json"
	resultsFile  = "results.csv"
)

var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	if baseDir == "" {
		baseDir = DefaultDir
	}
	return &Store{baseDir: baseDir}
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string         `json:"id"`
	Kind            string         `json:"kind"`
	Timestamp       time.Time      `json:"timestamp"`
	Config          *config.Config `json:"config"`
	DragCoefficient float64        `json:"drag_coefficient"`
	FrontalArea     float64        `json:"frontal_area"`
	ConfigHash      string         `json:"config_hash"`
	Mesh            string         `json:"mesh,omitempty"`
	Samples         int            `json:"samples"`
}

// Run is what a caller hands to Save. Exactly one of Single and Range is set.
type Run struct {
	Config          *config.Config
	DragCoefficient float64
	FrontalArea     float64
	Mesh            string
	Single          *aero.Result
	Range           *aero.SweepResult
}

// ConfigHash is the xxhash64 of the config's JSON encoding, in hex. Equal
// configs give equal hashes.
func ConfigHash(c *config.Config) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

func newRunID(kind string) string {
	return fmt.Sprintf("%s_%s", kind, uuid.NewString()[:8])
}

func (s *Store) Save(run Run) (string, error) {
	var kind string
	var header []string
	var rows [][]float64
	var area float64

	switch {
	case run.Single != nil && run.Range == nil:
		kind = KindSingle
		r := run.Single
		header = []string{"velocity", "drag_force_N", "power_W", "frontal_area"}
		rows = [][]float64{{r.Velocity, r.DragForce, r.Power, r.FrontalArea}}
		area = r.FrontalArea
	case run.Range != nil && run.Single == nil:
		kind = KindRange
		d := run.Range
		header = []string{"velocity", "drag_force_N", "power_W"}
		rows = make([][]float64, d.Len())
		for i := range rows {
			rows[i] = []float64{d.Velocities[i], d.DragForces[i], d.Powers[i]}
		}
		area = run.FrontalArea
	default:
		return "", fmt.Errorf("storage: run needs exactly one of a single result or a range")
	}
	if run.Config == nil {
		return "", fmt.Errorf("storage: run has no config")
	}

	hash, err := ConfigHash(run.Config)
	if err != nil {
		return "", err
	}

	runID := newRunID(kind)
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:              runID,
		Kind:            kind,
		Timestamp:       time.Now(),
		Config:          run.Config,
		DragCoefficient: run.DragCoefficient,
		FrontalArea:     area,
		ConfigHash:      hash,
		Mesh:            run.Mesh,
		Samples:         len(rows),
	}
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeRows(filepath.Join(runDir, resultsFile), header, rows); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeRows(path string, header []string, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadRows returns the CSV header and numeric rows of a run.
func (s *Store) LoadRows(runID string) ([]string, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, resultsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, [][]float64{}, nil
	}

	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]float64, 0, len(record))
		for _, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: %s: %w", runID, err)
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}
	return records[0], rows, nil
}

// LoadRange rebuilds the sweep of a range run.
func (s *Store) LoadRange(runID string) (*aero.SweepResult, error) {
	_, rows, err := s.LoadRows(runID)
	if err != nil {
		return nil, err
	}
	out := &aero.SweepResult{
		Velocities: make([]float64, 0, len(rows)),
		DragForces: make([]float64, 0, len(rows)),
		Powers:     make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		out.Velocities = append(out.Velocities, row[0])
		out.DragForces = append(out.DragForces, row[1])
		out.Powers = append(out.Powers, row[2])
	}
	return out, nil
}

func (s *Store) Delete(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
