package constants

// InitialCondition names how particles are distributed over states at t = 0.
type InitialCondition string

const (
	// InitialUniform spreads N particles evenly over every state.
	InitialUniform InitialCondition = "uniform"

	// InitialUpperHalf spreads N particles evenly over the upper half of the
	// state range and places none below it.
	InitialUpperHalf InitialCondition = "upper-half"
)

// Valid returns true if the initial condition is a recognized value.
func (c InitialCondition) Valid() bool {
	switch c {
	case InitialUniform, InitialUpperHalf:
		return true
	}
	return false
}

// String returns the string representation of the initial condition.
func (c InitialCondition) String() string {
	return string(c)
}

// MergeStrategy names how per-particle occupancy increments reach the
// shared result matrix.
type MergeStrategy string

const (
	// MergeLocal gives each worker a private matrix reduced once at the end.
	MergeLocal MergeStrategy = "local"

	// MergeShared has every worker record into one lock-guarded matrix.
	MergeShared MergeStrategy = "shared"
)

// Valid returns true if the merge strategy is a recognized value.
func (m MergeStrategy) Valid() bool {
	switch m {
	case MergeLocal, MergeShared:
		return true
	}
	return false
}

// String returns the string representation of the merge strategy.
func (m MergeStrategy) String() string {
	return string(m)
}
