package alloc

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ArenaCount <= 0 {
		t.Errorf("default ArenaCount should be positive, got %d", cfg.ArenaCount)
	}
	if cfg.Debug {
		t.Error("default Debug should be false")
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alloc.toml")
	body := "arena_count = 8\ndebug = true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ArenaCount != 8 {
		t.Errorf("ArenaCount = %d, want 8", cfg.ArenaCount)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.LargeAllocLogThreshold != DefaultConfig().LargeAllocLogThreshold {
		t.Error("LargeAllocLogThreshold should fall back to the default when unset")
	}
}

func TestLoadConfigRejectsNonPositiveArenaCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alloc.toml")
	if err := os.WriteFile(path, []byte("arena_count = 0\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig should reject a zero arena_count")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadConfig should error on a missing file")
	}
}
