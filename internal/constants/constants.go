// Package constants provides named constants used throughout the mlwalk codebase.
// The defaults reproduce the reference parameter set of the position-dependent
// anomalous diffusion experiment.
package constants

// Ensemble size and state-space constants
const (
	// DefaultParticles is the number of simulated particles.
	DefaultParticles = 10000

	// DefaultStates is the number of discrete position bins.
	DefaultStates = 50
)

// Waiting-time law constants. The shape parameter is interpolated linearly
// across states; the scale parameter grows exponentially.
const (
	// DefaultMinShape is the Mittag-Leffler exponent of state 0.
	DefaultMinShape = 0.4

	// DefaultMaxShape is the Mittag-Leffler exponent of the last state.
	DefaultMaxShape = 0.9

	// DefaultScaleBase is the time scale t0 of state 0.
	DefaultScaleBase = 1e-3

	// DefaultScaleGrowth is the exponent applied across the state range:
	// t0[i] = DefaultScaleBase * exp(i/(n-1) * DefaultScaleGrowth).
	DefaultScaleGrowth = 5.0
)

// Time-axis constants
const (
	// DefaultEndTime is the simulated time at which every walk stops.
	DefaultEndTime = 1e6

	// DefaultCheckpoints is the number of evenly spaced checkpoints in [0, end).
	// The terminal row at the end time is recorded in addition to these.
	DefaultCheckpoints = 10
)

// Run constants
const (
	// DefaultOutputFile is the dump written by "mlwalk run" when no path is given.
	DefaultOutputFile = "test.txt"

	// ProgressSteps is the number of progress reports emitted over a run.
	ProgressSteps = 10

	// RunLogDirName is the directory, next to the output file, that receives
	// the JSONL run log at debug level.
	RunLogDirName = ".mlwalk"
)
