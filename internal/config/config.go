// Package config provides unified configuration loading for mlwalk.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nvandessel/mlwalk/internal/constants"
	"github.com/nvandessel/mlwalk/internal/mittag"
	"github.com/nvandessel/mlwalk/internal/models"
	"gopkg.in/yaml.v3"
)

// LocalConfigFile is read from the working directory when no path is given.
const LocalConfigFile = "mlwalk.yaml"

// MlwalkConfig contains all mlwalk configuration settings.
type MlwalkConfig struct {
	// Simulation holds the physical parameters of the ensemble.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Run holds execution settings that do not change the result.
	Run RunConfig `json:"run" yaml:"run"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig describes the ensemble being simulated.
type SimulationConfig struct {
	// Particles is the ensemble size N.
	Particles int `json:"particles" yaml:"particles"`

	// States is the number of discrete position bins.
	States int `json:"states" yaml:"states"`

	// MinShape and MaxShape bound the linearly interpolated Mittag-Leffler
	// exponent. Both must lie in (0, 1).
	MinShape float64 `json:"min_shape" yaml:"min_shape"`
	MaxShape float64 `json:"max_shape" yaml:"max_shape"`

	// ScaleBase and ScaleGrowth define t0[i] = ScaleBase*exp(x*ScaleGrowth).
	ScaleBase   float64 `json:"scale_base" yaml:"scale_base"`
	ScaleGrowth float64 `json:"scale_growth" yaml:"scale_growth"`

	// EndTime is the simulated time at which walks stop.
	EndTime float64 `json:"end_time" yaml:"end_time"`

	// Checkpoints is the number of evenly spaced checkpoints in [0, EndTime).
	Checkpoints int `json:"checkpoints" yaml:"checkpoints"`

	// Initial names the initial condition: "uniform" or "upper-half".
	Initial constants.InitialCondition `json:"initial" yaml:"initial"`

	// Seed is the base seed. Zero draws a fresh seed for every run.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// RunConfig configures how a run executes and where it writes.
type RunConfig struct {
	// Workers is the number of simulation goroutines; 0 uses GOMAXPROCS.
	Workers int `json:"workers" yaml:"workers"`

	// Merge selects the accumulation strategy: "local" or "shared".
	Merge constants.MergeStrategy `json:"merge" yaml:"merge"`

	// Output is the path of the occupancy dump. Supports ${VAR} syntax.
	Output string `json:"output" yaml:"output"`
}

// LoggingConfig configures mlwalk's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" also appends run events to .mlwalk/runs.jsonl next to the output.
	Level string `json:"level" yaml:"level"`
}

// Default returns an MlwalkConfig with the reference parameter set.
func Default() *MlwalkConfig {
	return &MlwalkConfig{
		Simulation: SimulationConfig{
			Particles:   constants.DefaultParticles,
			States:      constants.DefaultStates,
			MinShape:    constants.DefaultMinShape,
			MaxShape:    constants.DefaultMaxShape,
			ScaleBase:   constants.DefaultScaleBase,
			ScaleGrowth: constants.DefaultScaleGrowth,
			EndTime:     constants.DefaultEndTime,
			Checkpoints: constants.DefaultCheckpoints,
			Initial:     constants.InitialUniform,
		},
		Run: RunConfig{
			Workers: 0,
			Merge:   constants.MergeLocal,
			Output:  constants.DefaultOutputFile,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from path, or from the default locations when
// path is empty, then applies environment variables.
// Order: defaults -> ./mlwalk.yaml or ~/.mlwalk/config.yaml -> environment variables
func Load(path string) (*MlwalkConfig, error) {
	config := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	return config, nil
}

// findConfigFile returns the first existing default config file, or "".
func findConfigFile() string {
	if _, err := os.Stat(LocalConfigFile); err == nil {
		return LocalConfigFile
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(homeDir, ".mlwalk", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// LoadFromFile loads configuration from a specific YAML file. Keys absent
// from the file keep their default values.
func LoadFromFile(path string) (*MlwalkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config.Run.Output = expandEnvVars(config.Run.Output)

	return config, nil
}

// Validate checks that the configuration is valid. It is called before any
// particle is simulated.
func (c *MlwalkConfig) Validate() error {
	s := c.Simulation
	if s.Particles < 1 {
		return fmt.Errorf("particles must be >= 1, got %d", s.Particles)
	}
	if s.States < 1 {
		return fmt.Errorf("states must be >= 1, got %d", s.States)
	}
	if err := mittag.ValidateShape(s.MinShape); err != nil {
		return fmt.Errorf("min_shape: %w", err)
	}
	if err := mittag.ValidateShape(s.MaxShape); err != nil {
		return fmt.Errorf("max_shape: %w", err)
	}
	if err := mittag.ValidateScale(s.ScaleBase); err != nil {
		return fmt.Errorf("scale_base: %w", err)
	}
	if math.IsNaN(s.ScaleGrowth) || math.IsInf(s.ScaleGrowth, 0) {
		return fmt.Errorf("scale_growth must be finite, got %v", s.ScaleGrowth)
	}
	if math.IsNaN(s.EndTime) || math.IsInf(s.EndTime, 0) || s.EndTime < 0 {
		return fmt.Errorf("end_time must be finite and >= 0, got %v", s.EndTime)
	}
	if s.Checkpoints < 0 {
		return fmt.Errorf("checkpoints must be >= 0, got %d", s.Checkpoints)
	}
	if !s.Initial.Valid() {
		return fmt.Errorf("invalid initial condition: %s (valid: uniform, upper-half)", s.Initial)
	}

	if c.Run.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Run.Workers)
	}
	if !c.Run.Merge.Valid() {
		return fmt.Errorf("invalid merge strategy: %s (valid: local, shared)", c.Run.Merge)
	}
	if strings.TrimSpace(c.Run.Output) == "" {
		return fmt.Errorf("output path must not be empty")
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// Tables builds the per-state parameters, checkpoint schedule and initial
// population described by the simulation settings.
func (s SimulationConfig) Tables() (models.StateParams, models.Schedule, models.Population, error) {
	params, err := models.BuildStateParams(s.States, s.MinShape, s.MaxShape, s.ScaleBase, s.ScaleGrowth)
	if err != nil {
		return models.StateParams{}, models.Schedule{}, nil, fmt.Errorf("building state parameters: %w", err)
	}
	sched := models.EvenSchedule(s.EndTime, s.Checkpoints)
	if err := sched.Validate(); err != nil {
		return models.StateParams{}, models.Schedule{}, nil, err
	}
	pop, err := models.BuildPopulation(s.Initial, s.Particles, s.States)
	if err != nil {
		return models.StateParams{}, models.Schedule{}, nil, fmt.Errorf("building initial population: %w", err)
	}
	return params, sched, pop, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *MlwalkConfig) {
	if v := os.Getenv("MLWALK_PARTICLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Particles = n
		}
	}
	if v := os.Getenv("MLWALK_STATES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.States = n
		}
	}
	if v := os.Getenv("MLWALK_END_TIME"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Simulation.EndTime = f
		}
	}
	if v := os.Getenv("MLWALK_CHECKPOINTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Checkpoints = n
		}
	}
	if v := os.Getenv("MLWALK_INITIAL"); v != "" {
		config.Simulation.Initial = constants.InitialCondition(v)
	}
	if v := os.Getenv("MLWALK_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Simulation.Seed = n
		}
	}

	if v := os.Getenv("MLWALK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Run.Workers = n
		}
	}
	if v := os.Getenv("MLWALK_MERGE"); v != "" {
		config.Run.Merge = constants.MergeStrategy(v)
	}
	if v := os.Getenv("MLWALK_OUTPUT"); v != "" {
		config.Run.Output = expandEnvVars(v)
	}

	if v := os.Getenv("MLWALK_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
