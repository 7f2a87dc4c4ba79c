// Package walk simulates one particle's continuous-time random walk over the
// discrete state space.
//
// Each event draws a residence time for the current state, records the
// particle's state at every checkpoint that the residence interval covers,
// and then moves the particle one state up or down with a bias toward the
// middle of the state range. Walks stop once the particle's clock passes the
// schedule's end time, at which point the final state is recorded in the
// terminal row.
package walk

// Direction tags the outcome of a transition.
type Direction int

const (
	// Up moved the particle to state+1.
	Up Direction = iota
	// Down moved the particle to state-1.
	Down
	// HeldAtTop drew "up" in the last state and stayed there.
	HeldAtTop
	// HeldAtBottom drew "down" in state 0 and stayed there.
	HeldAtBottom
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case HeldAtTop:
		return "held-at-top"
	case HeldAtBottom:
		return "held-at-bottom"
	}
	return "unknown"
}

// Transition is the result of one biased coin flip.
type Transition struct {
	From int
	To   int
	Dir  Direction
}

// UpProbability is the chance of moving up from state:
// 0.5 + 0.5/n * (0.5 - state/n). States below the middle lean up, states
// above lean down.
func UpProbability(state, nstates int) float64 {
	n := float64(nstates)
	return 0.5 + 0.5/n*(0.5-float64(state)/n)
}

// Step applies the transition rule for a coin in [0, 1). The walk is clamped
// at both ends of the state range.
func Step(state, nstates int, coin float64) Transition {
	if coin < UpProbability(state, nstates) {
		if state == nstates-1 {
			return Transition{From: state, To: state, Dir: HeldAtTop}
		}
		return Transition{From: state, To: state + 1, Dir: Up}
	}
	if state == 0 {
		return Transition{From: state, To: state, Dir: HeldAtBottom}
	}
	return Transition{From: state, To: state - 1, Dir: Down}
}
