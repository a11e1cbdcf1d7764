package predictor

import (
	"encoding/json"
	"fmt"
	"os"
)

// Limits on the predictor geometry.
const (
	MinIndexBits   = 16
	MaxIndexBits   = 32
	MaxHistoryBits = 32
)

// Config holds the geometry of a gshare predictor.
type Config struct {
	// IndexBits is the width of the hashed table index. The table holds
	// 2^IndexBits counters. Must be in [16, 32]. Default: 16.
	IndexBits uint `json:"index_bits"`

	// HistoryBits is the width of the global history register. Must be in
	// [0, 32] and not greater than IndexBits. Default: 0.
	HistoryBits uint `json:"history_bits"`
}

// DefaultConfig returns a Config for a 16-bit table without history.
func DefaultConfig() *Config {
	return &Config{
		IndexBits:   MinIndexBits,
		HistoryBits: 0,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read predictor config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse predictor config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize predictor config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write predictor config file: %w", err)
	}

	return nil
}

// Validate checks the index and history widths.
func (c *Config) Validate() error {
	if c.IndexBits < MinIndexBits || c.IndexBits > MaxIndexBits {
		return fmt.Errorf("%w: index bits count must be in range %d - %d, got %d",
			ErrInvalidConfig, MinIndexBits, MaxIndexBits, c.IndexBits)
	}
	if c.HistoryBits > MaxHistoryBits {
		return fmt.Errorf("%w: history bits count must be in range 0 - %d, got %d",
			ErrInvalidConfig, MaxHistoryBits, c.HistoryBits)
	}
	if c.HistoryBits > c.IndexBits {
		return fmt.Errorf("%w: index bits count (%d) must not be less than history bits count (%d)",
			ErrInvalidConfig, c.IndexBits, c.HistoryBits)
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	return &Config{
		IndexBits:   c.IndexBits,
		HistoryBits: c.HistoryBits,
	}
}
