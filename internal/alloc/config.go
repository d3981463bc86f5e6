package alloc

import (
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Config tunes the allocator's process-global, one-shot-initialized state.
// It is loaded the same way the teacher's internal/pkg/config.go loads
// package manifests: a small TOML document read by LoadConfig. There is no
// save counterpart.
type Config struct {
	// ArenaCount is the number of independent lock-striped arenas (§4.6).
	// The canonical design uses 4; this is the only knob that affects the
	// allocator's concurrency fan-out.
	ArenaCount int `toml:"arena_count"`

	// Debug gates verbose chunk-lifecycle logging.
	Debug bool `toml:"debug"`

	// LargeAllocLogThreshold is the byte size above which a large
	// allocation is logged even when Debug is false.
	LargeAllocLogThreshold int `toml:"large_alloc_log_threshold"`
}

// DefaultConfig returns the canonical tuning: 4 arenas, logging quiet
// except for very large allocations.
func DefaultConfig() *Config {
	return &Config{
		ArenaCount:             4,
		Debug:                  false,
		LargeAllocLogThreshold: 1 << 20,
	}
}

// LoadConfig reads a TOML tuning file, starting from DefaultConfig and
// overriding only the fields the file sets.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("alloc: failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("alloc: failed to parse config file: %w", err)
	}
	if cfg.ArenaCount <= 0 {
		return nil, fmt.Errorf("alloc: arena_count must be positive, got %d", cfg.ArenaCount)
	}
	return cfg, nil
}

var (
	configMu  sync.Mutex
	activeCfg = DefaultConfig()
)

// SetConfig overrides the package's active configuration. It must be
// called before the first allocate/free/reallocate call, because the
// arena count is baked into the process-global arena array exactly once
// (§3: "Arenas... process-global and initialized exactly once").
func SetConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	if arenasInitialized() {
		panic("alloc: SetConfig called after arenas were initialized")
	}
	activeCfg = cfg
}

func currentConfig() *Config {
	configMu.Lock()
	defer configMu.Unlock()
	return activeCfg
}
