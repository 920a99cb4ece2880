package bvconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadOverlaysPartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bvsynth.yaml")
	if err := os.WriteFile(path, []byte("default_timeout_sec: 5\ncache_dir: /tmp/bvcache\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultTimeoutSec != 5 {
		t.Fatalf("DefaultTimeoutSec = %d, want 5", cfg.DefaultTimeoutSec)
	}
	if cfg.CacheDir != "/tmp/bvcache" {
		t.Fatalf("CacheDir = %q, want /tmp/bvcache", cfg.CacheDir)
	}
	if cfg.MaxBody != Default().MaxBody {
		t.Fatalf("MaxBody should fall back to default, got %d", cfg.MaxBody)
	}
}
