package rowflux

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/rowflux/rowflux/service/bench"
	"github.com/rowflux/rowflux/service/dispatcher"
)

// Config is a serialisable representation of the tool configuration. It can
// be populated from YAML or JSON; the zero-value is useful since all nested
// fields inherit their package defaults.
type Config struct {
	Bench      bench.Config      `yaml:"bench" json:"bench"`
	Dispatcher dispatcher.Config `yaml:"dispatcher" json:"dispatcher"`
	Output     OutputConfig      `yaml:"output" json:"output"`
	Trace      TraceConfig       `yaml:"trace" json:"trace"`

	// Host optionally names a remote machine whose facts go into the
	// report's system-info file; empty means the local machine.
	Host string `yaml:"host,omitempty" json:"host,omitempty"`
}

// OutputConfig locates the report artifacts.
type OutputConfig struct {
	URL string `yaml:"url" json:"url"`
}

// TraceConfig toggles span export.
type TraceConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Output  string `yaml:"output,omitempty" json:"output,omitempty"`
}

// DefaultConfig returns a Config populated with every package's defaults.
// Callers may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Bench:      bench.DefaultConfig(),
		Dispatcher: dispatcher.DefaultConfig(),
		Output:     OutputConfig{URL: "benchmark-report"},
	}
}

// Validate returns an aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := c.Bench.Validate(); err != nil {
		return err
	}
	if c.Output.URL == "" {
		return fmt.Errorf("output.url must not be empty")
	}
	return nil
}

// LoadConfig reads and validates a YAML configuration from the supplied URL
// (any scheme afs understands).
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
