package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDeliversReloadedConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "virtcam.toml")
	if err := os.WriteFile(path, []byte("[camera]\nmove_speed = 1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Invalid content is skipped.
	if err := os.WriteFile(path, []byte("[camera]\nmove_speed = -3.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[camera]\nmove_speed = 7.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.Updates():
			if cfg.Camera.MoveSpeed == 7 {
				return
			}
			t.Fatalf("unexpected config delivered: %+v", cfg.Camera)
		case <-deadline:
			t.Fatalf("no config reload observed")
		}
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "virtcam.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err == nil {
		t.Fatalf("second Close should fail")
	}
}
