package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lmarzola/odelab/internal/model"
)

const (
	DefaultModel = "oscillator"
	DefaultOrder = 4
	DefaultStep  = 1.0
	DefaultT1    = 110.0
)

// Config describes one integration run: which model, which method order,
// the fixed step and time span, and optional overrides for the initial
// state and model parameters. Empty Y0 falls back to the model default
// at assembly time.
type Config struct {
	Model  string             `yaml:"model"`
	Order  int                `yaml:"order"`
	Step   float64            `yaml:"step"`
	T0     float64            `yaml:"t0"`
	T1     float64            `yaml:"t1"`
	Y0     []float64          `yaml:"y0,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: DefaultModel,
		Order: DefaultOrder,
		Step:  DefaultStep,
		T0:    0,
		T1:    DefaultT1,
	}
}

// Load reads a run file, overlaying it on the defaults so partial files
// stay valid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first problem that would otherwise only surface
// deep inside the engine, so malformed run files fail up front with a
// message naming the field.
func (c *Config) Validate() error {
	if _, err := model.NewRegistry().Get(c.Model); err != nil {
		return err
	}
	if c.Order < 1 || c.Order > 4 {
		return fmt.Errorf("config: order must be 1, 2, 3 or 4, got %d", c.Order)
	}
	if c.Step == 0 || math.IsNaN(c.Step) || math.IsInf(c.Step, 0) {
		return fmt.Errorf("config: step must be nonzero and finite, got %g", c.Step)
	}
	if (c.T1-c.T0)*c.Step < 0 {
		return fmt.Errorf("config: step %g runs against the span [%g, %g]", c.Step, c.T0, c.T1)
	}
	return nil
}

// Clone returns a deep copy so callers can tweak a preset without
// touching the shared table.
func (c *Config) Clone() *Config {
	out := *c
	if c.Y0 != nil {
		out.Y0 = append([]float64(nil), c.Y0...)
	}
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}
