package fftcheck

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/fftcheck/comm"
)

// Defaults for the recognized options.
const (
	DefaultProblemSize = 4096
	DefaultVerifySize  = 1024
	DefaultTrials      = 5
	DefaultSeed        = 1
)

// Config holds the externally supplied constants of a run.
type Config struct {
	// ProblemSize sizes the steady-state Context only.
	ProblemSize int `yaml:"problem_size" json:"problem_size" validate:"gt=0"`
	// VerifySize is the fixed trial length used by validation.
	VerifySize int `yaml:"verify_size" json:"verify_size" validate:"gt=0"`
	// VerifyAtProblemSize validates at ProblemSize instead of VerifySize.
	VerifyAtProblemSize bool `yaml:"verify_at_problem_size" json:"verify_at_problem_size"`
	// Trials is the number of randomized attempts; validation fails fast.
	Trials int `yaml:"trials" json:"trials" validate:"gt=0"`
	// Tolerance is the inclusive absolute bound per component.
	Tolerance float64 `yaml:"tolerance" json:"tolerance" validate:"gte=0"`
	// Seed seeds every rank's generator, offset by rank.
	Seed uint64 `yaml:"seed" json:"seed"`

	// Launch is the launch used when Launches is empty.
	Launch comm.LaunchConfig `yaml:"launch" json:"launch"`
	// Launches lists the launches a sweep runs, in order.
	Launches []comm.LaunchConfig `yaml:"launches,omitempty" json:"launches,omitempty" validate:"dive"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		ProblemSize: DefaultProblemSize,
		VerifySize:  DefaultVerifySize,
		Trials:      DefaultTrials,
		Tolerance:   DefaultTolerance,
		Seed:        DefaultSeed,
		Launch: comm.LaunchConfig{
			Model: comm.ModelSerial,
			Ranks: 1,
		},
	}
}

var configValidate = validator.New()

// Validate checks field ranges and that the launch model is registered.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for _, lc := range c.LaunchList() {
		if _, err := comm.LookupModel(lc.Model); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

// LaunchList returns Launches, or Launch alone when Launches is empty.
func (c Config) LaunchList() []comm.LaunchConfig {
	if len(c.Launches) == 0 {
		return []comm.LaunchConfig{c.Launch}
	}

	return c.Launches
}

// ModelFilter selects launches by execution model. Names may be aliases.
// An empty Include selects every model.
type ModelFilter struct {
	Include []string
	Exclude []string
}

// SelectLaunches returns the launches of c whose model passes f, in order.
func (c Config) SelectLaunches(f ModelFilter) ([]comm.LaunchConfig, error) {
	include, err := resolveModels(f.Include)
	if err != nil {
		return nil, err
	}

	exclude, err := resolveModels(f.Exclude)
	if err != nil {
		return nil, err
	}

	var out []comm.LaunchConfig

	for _, lc := range c.LaunchList() {
		model, err := comm.LookupModel(lc.Model)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}

		if len(include) > 0 && !include[model.Name] {
			continue
		}

		if exclude[model.Name] {
			continue
		}

		out = append(out, lc)
	}

	return out, nil
}

func resolveModels(names []string) (map[string]bool, error) {
	set := make(map[string]bool, len(names))

	for _, name := range names {
		model, err := comm.LookupModel(name)
		if err != nil {
			return nil, err
		}

		set[model.Name] = true
	}

	return set, nil
}

// TrialSize returns the length of each validation trial.
func (c Config) TrialSize() int {
	if c.VerifyAtProblemSize {
		return c.ProblemSize
	}

	return c.VerifySize
}

// Tol returns the comparison tolerance.
func (c Config) Tol() Tolerance {
	return Tolerance{Abs: c.Tolerance}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
// Keys missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// WriteConfig writes cfg as YAML, creating parent directories.
func WriteConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
