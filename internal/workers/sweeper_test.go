package workers

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touchOld(t *testing.T, path string, age time.Duration) {
	t.Helper()
	old := time.Now().Add(-age)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("Failed to age %s: %v", path, err)
	}
}

func TestSweeper_SweepExports(t *testing.T) {
	exportDir := t.TempDir()
	s := NewSweeper(exportDir, t.TempDir())

	expired := filepath.Join(exportDir, "fleet-export-old.zip")
	fresh := filepath.Join(exportDir, "fleet-export-new.zip")
	unrelated := filepath.Join(exportDir, "notes.txt")
	for _, p := range []string{expired, fresh, unrelated} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	touchOld(t, expired, 2*time.Hour)
	touchOld(t, unrelated, 2*time.Hour)

	s.sweepExports()

	if _, err := os.Stat(expired); !os.IsNotExist(err) {
		t.Error("Expected expired archive removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("Expected fresh archive kept")
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Error("Expected non-archive file untouched")
	}
}

func TestSweeper_SweepScratch(t *testing.T) {
	scratchDir := t.TempDir()
	s := NewSweeper(t.TempDir(), scratchDir)

	orphan := filepath.Join(scratchDir, "fleet-import-abcd")
	if err := os.MkdirAll(filepath.Join(orphan, "files", "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(orphan, "files", "images", "a.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	touchOld(t, orphan, 12*time.Hour)

	live := filepath.Join(scratchDir, "fleet-import-live")
	if err := os.MkdirAll(live, 0o755); err != nil {
		t.Fatal(err)
	}

	foreign := filepath.Join(scratchDir, "somebody-elses-dir")
	if err := os.MkdirAll(foreign, 0o755); err != nil {
		t.Fatal(err)
	}
	touchOld(t, foreign, 12*time.Hour)

	s.sweepScratch()

	if _, err := os.Stat(orphan); !os.IsNotExist(err) {
		t.Error("Expected orphaned scratch dir removed")
	}
	if _, err := os.Stat(live); err != nil {
		t.Error("Expected recent scratch dir kept")
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Error("Expected unrelated dir untouched")
	}
}
