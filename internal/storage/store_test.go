package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/windtunnel/internal/aero"
	"github.com/san-kum/windtunnel/internal/config"
)

func TestStoreSaveLoadSingle(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	res := aero.Evaluate(cfg.Flow.Density, 20, 30, 0.3)

	runID, err := st.Save(Run{Config: cfg, DragCoefficient: 0.3, Mesh: "car.stl", Single: &res})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, KindSingle+"_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kind != KindSingle {
		t.Errorf("expected kind single, got %s", meta.Kind)
	}
	if meta.FrontalArea != 30 {
		t.Errorf("expected area 30, got %f", meta.FrontalArea)
	}
	if meta.Mesh != "car.stl" || meta.Samples != 1 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	want, _ := ConfigHash(cfg)
	if meta.ConfigHash != want {
		t.Errorf("hash mismatch: %s vs %s", meta.ConfigHash, want)
	}

	header, rows, err := st.LoadRows(runID)
	if err != nil {
		t.Fatalf("load rows failed: %v", err)
	}
	if len(header) != 4 || header[1] != "drag_force_N" {
		t.Errorf("unexpected header %v", header)
	}
	if len(rows) != 1 || rows[0][1] != res.DragForce {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestStoreSaveLoadRange(t *testing.T) {
	st := New(t.TempDir())

	cfg := config.DefaultConfig()
	data, err := aero.Sweep(aero.Range{Start: 10, End: 30, Step: 10}, cfg.Flow.Density, 100, 0.3)
	if err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(Run{Config: cfg, DragCoefficient: 0.3, FrontalArea: 100, Range: data})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Kind != KindRange || meta.Samples != 3 {
		t.Errorf("unexpected metadata %+v", meta)
	}

	got, err := st.LoadRange(runID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", got.Len())
	}
	for i := range got.Velocities {
		if got.Velocities[i] != data.Velocities[i] || got.Powers[i] != data.Powers[i] {
			t.Errorf("sample %d: got %v/%v", i, got.Velocities[i], got.Powers[i])
		}
	}
}

func TestStoreSaveRejectsAmbiguousRun(t *testing.T) {
	st := New(t.TempDir())
	cfg := config.DefaultConfig()
	res := aero.Evaluate(1.225, 10, 1, 0.3)

	if _, err := st.Save(Run{Config: cfg}); err == nil {
		t.Error("expected error for empty run")
	}
	if _, err := st.Save(Run{Config: cfg, Single: &res, Range: &aero.SweepResult{}}); err == nil {
		t.Error("expected error for run with both results")
	}
	if _, err := st.Save(Run{Single: &res}); err == nil {
		t.Error("expected error for run without config")
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	cfg := config.DefaultConfig()

	for i := 0; i < 3; i++ {
		res := aero.Evaluate(1.225, float64(10*(i+1)), 1, 0.3)
		if _, err := st.Save(Run{Config: cfg, Single: &res}); err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	// Stray files and broken runs are skipped.
	os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644)
	os.MkdirAll(filepath.Join(tmpDir, "broken"), 0755)

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].Timestamp.Before(runs[i-1].Timestamp) {
			t.Error("runs not sorted by timestamp")
		}
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := st.LoadRows("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := st.Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	st := New(t.TempDir())
	res := aero.Evaluate(1.225, 10, 1, 0.3)
	runID, err := st.Save(Run{Config: config.DefaultConfig(), Single: &res})
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(runID); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load(runID); !errors.Is(err, ErrNotFound) {
		t.Errorf("run still present: %v", err)
	}
}

func TestConfigHashStable(t *testing.T) {
	a, err := ConfigHash(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ConfigHash(config.DefaultConfig())
	if a != b {
		t.Errorf("hash not stable: %s vs %s", a, b)
	}

	changed := config.DefaultConfig()
	changed.Flow.Velocity = 99
	c, _ := ConfigHash(changed)
	if a == c {
		t.Error("expected different hash for different config")
	}
}

func TestNewDefaultDir(t *testing.T) {
	if New("").Dir() != DefaultDir {
		t.Errorf("expected default dir %s", DefaultDir)
	}
}
