package bench

import "fmt"

// Config drives the benchmark sweep: one timed cell per (size, workers)
// pair, Repeats runs per cell.
type Config struct {
	// Sizes lists matrix row counts to benchmark
	Sizes []int `yaml:"sizes" json:"sizes"`

	// Columns fixes the row length; 0 means square matrices
	Columns int `yaml:"columns,omitempty" json:"columns,omitempty"`

	// Workers lists pool sizes to sweep per matrix size
	Workers []int `yaml:"workers" json:"workers"`

	// Repeats is how many timed runs feed each cell's aggregates
	Repeats int `yaml:"repeats" json:"repeats"`

	// Seed makes matrix generation reproducible
	Seed int64 `yaml:"seed" json:"seed"`
}

// DefaultConfig returns the default sweep configuration
func DefaultConfig() Config {
	return Config{
		Sizes:   []int{100, 500, 1000},
		Workers: []int{1, 2, 4, 8},
		Repeats: 3,
		Seed:    1,
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("bench.sizes must not be empty")
	}
	for _, size := range c.Sizes {
		if size < 1 {
			return fmt.Errorf("bench.sizes entries must be positive, had %v", size)
		}
	}
	if len(c.Workers) == 0 {
		return fmt.Errorf("bench.workers must not be empty")
	}
	for _, workers := range c.Workers {
		if workers < 1 {
			return fmt.Errorf("bench.workers entries must be positive, had %v", workers)
		}
	}
	if c.Repeats < 1 {
		return fmt.Errorf("bench.repeats must be positive, had %v", c.Repeats)
	}
	if c.Columns < 0 {
		return fmt.Errorf("bench.columns must not be negative, had %v", c.Columns)
	}
	return nil
}
