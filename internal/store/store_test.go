package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lmarzola/odelab/internal/config"
	"github.com/lmarzola/odelab/internal/ode"
)

func sampleRun() (*config.Config, *ode.Trajectory) {
	cfg := &config.Config{
		Model: "decay", Order: 4, Step: 0.5, T0: 0, T1: 1,
		Params: map[string]float64{"k": 2},
	}
	tr := &ode.Trajectory{
		Dim:    1,
		Times:  []float64{0, 0.5, 1},
		States: []float64{1, 0.36787944117144233, 0.1353352832366127},
	}
	return cfg, tr
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, tr := sampleRun()
	runID, err := st.Save(cfg, tr)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Model != "decay" || meta.Order != 4 || meta.Method != "rk4" {
		t.Errorf("metadata: %+v", meta)
	}
	if meta.Dim != 1 || meta.Points != 3 {
		t.Errorf("dim/points wrong: %+v", meta)
	}
	if meta.Params["k"] != 2 {
		t.Errorf("params lost: %v", meta.Params)
	}

	got, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if got.Dim != tr.Dim || got.Len() != tr.Len() {
		t.Fatalf("shape changed: dim %d len %d", got.Dim, got.Len())
	}
	for i := range tr.Times {
		if got.Times[i] != tr.Times[i] {
			t.Fatalf("time %d: %v != %v", i, got.Times[i], tr.Times[i])
		}
	}
	// shortest exact formatting must reproduce every state bit for bit
	for i := range tr.States {
		if got.States[i] != tr.States[i] {
			t.Fatalf("state %d: %v != %v", i, got.States[i], tr.States[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	cfg, tr := sampleRun()
	if _, err := st.Save(cfg, tr); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(cfg, tr); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingBaseDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, tr := sampleRun()
	runID, err := st.Save(cfg, tr)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "states.csv")); os.IsNotExist(err) {
		t.Error("states.csv not created")
	}
}

func TestLoadTrajectoryMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.LoadTrajectory("nope"); err == nil {
		t.Error("expected an error for a missing run")
	}
}
