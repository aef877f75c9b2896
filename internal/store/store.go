// Package store persists integration runs under a base directory, one
// subdirectory per run holding metadata.json and states.csv.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lmarzola/odelab/internal/config"
	"github.com/lmarzola/odelab/internal/ode"
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
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Order     int                `json:"order"`
	Method    string             `json:"method"`
	Step      float64            `json:"step"`
	T0        float64            `json:"t0"`
	T1        float64            `json:"t1"`
	Dim       int                `json:"dim"`
	Points    int                `json:"points"`
	Params    map[string]float64 `json:"params,omitempty"`
}

// Save writes one run. The identifier combines the model name with a
// nanosecond timestamp so consecutive saves never collide.
func (s *Store) Save(cfg *config.Config, tr *ode.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Model, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     cfg.Model,
		Timestamp: time.Now(),
		Order:     cfg.Order,
		Method:    ode.Order(cfg.Order).String(),
		Step:      cfg.Step,
		T0:        cfg.T0,
		T1:        cfg.T1,
		Dim:       tr.Dim,
		Points:    tr.Len(),
		Params:    cfg.Params,
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

	csvPath := filepath.Join(runDir, "states.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for i := 0; i < tr.Dim; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	// shortest exact formatting so a load reproduces the run bit for bit
	for i := 0; i < tr.Len(); i++ {
		row := []string{strconv.FormatFloat(tr.Times[i], 'g', -1, 64)}
		for _, val := range tr.Y(i) {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

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

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads states.csv back into a trajectory. Malformed
// rows are an error: the flat row-major layout cannot absorb gaps.
func (s *Store) LoadTrajectory(runID string) (*ode.Trajectory, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("store: run %s has no state rows", runID)
	}

	dim := len(records[0]) - 1
	if dim < 1 {
		return nil, fmt.Errorf("store: run %s has a malformed header", runID)
	}

	n := len(records) - 1
	tr := &ode.Trajectory{
		Dim:    dim,
		Times:  make([]float64, n),
		States: make([]float64, n*dim),
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != dim+1 {
			return nil, fmt.Errorf("store: run %s row %d has %d fields, want %d", runID, i, len(record), dim+1)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("store: run %s row %d: %w", runID, i, err)
		}
		tr.Times[i-1] = t
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("store: run %s row %d: %w", runID, i, err)
			}
			tr.States[(i-1)*dim+j-1] = val
		}
	}

	return tr, nil
}
