package pdp8

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the "SET CPU" parameter set of spec.md §6: memory size,
// EAE presence, idle detection, history capacity, and the illegal-
// instruction behavior toggle of spec.md §7.
type Config struct {
	MemoryWords     int  `yaml:"memory_words"`
	EAE             bool `yaml:"eae"`
	Idle            bool `yaml:"idle"`
	HistoryCapacity int  `yaml:"history_capacity"`
	StopOnIllegal   bool `yaml:"stop_on_illegal"`
	TSCEnabled      bool `yaml:"tsc_enabled"`
}

// DefaultConfig matches a cold front panel: full 32K, EAE present,
// idle detection on, history disabled, illegal instructions halt.
func DefaultConfig() Config {
	return Config{
		MemoryWords:     MaxWords,
		EAE:             true,
		Idle:            true,
		HistoryCapacity: 0,
		StopOnIllegal:   true,
	}
}

// MemorySizeWords maps a "SET CPU {4K,8K,...,32K}" token (spec.md §6)
// to a word count.
func MemorySizeWords(token string) (int, error) {
	sizes := map[string]int{
		"4K": 4 * 1024, "8K": 8 * 1024, "12K": 12 * 1024, "16K": 16 * 1024,
		"20K": 20 * 1024, "24K": 24 * 1024, "28K": 28 * 1024, "32K": 32 * 1024,
	}
	if n, ok := sizes[token]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("unknown CPU memory size %q", token)
}

// LoadConfig reads a YAML config file (spec.md §6's persistent-settings
// surface, carried the way the rest of the pack's simulator manifests
// use gopkg.in/yaml.v3 for this purpose), overlaying onto
// DefaultConfig so a partial file only overrides what it specifies.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
