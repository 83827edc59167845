package stage

import "github.com/louisbranch/sonundrum/internal/core/rule"

// Phase is the coarse position of a session in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingObligation
	PhaseFinalizing
	PhaseSolved
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingObligation:
		return "awaiting-obligation"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseSolved:
		return "solved"
	default:
		return "idle"
	}
}

// State is a copy of the session state.
type State struct {
	Phase              Phase
	Stage              int
	RequiredPress      rule.Button
	RequiredSolve      string
	PreviousApplied    bool
	AwaitingFinalPress bool
	Solved             bool
	SolvedModules      []string
	Strikes            int
	LastText           string
}

// State returns a snapshot of the session.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	phase := PhaseIdle
	switch {
	case e.solved:
		phase = PhaseSolved
	case e.finalizing:
		phase = PhaseFinalizing
	case e.started:
		phase = PhaseAwaitingObligation
	}

	return State{
		Phase:              phase,
		Stage:              e.stage,
		RequiredPress:      e.requiredPress,
		RequiredSolve:      e.requiredSolve,
		PreviousApplied:    e.previousApplied,
		AwaitingFinalPress: e.solveOnPress && !e.solved,
		Solved:             e.solved,
		SolvedModules:      append([]string(nil), e.history...),
		Strikes:            e.strikes,
		LastText:           e.lastText,
	}
}
