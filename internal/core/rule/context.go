package rule

// Board is a read-only snapshot of the collaborating modules on the bomb.
// Names may repeat when several instances of a module are present.
type Board struct {
	Solvable []string
	Solved   []string
}

// Clone returns a copy of b that shares no slices with it.
func (b Board) Clone() Board {
	return Board{
		Solvable: append([]string(nil), b.Solvable...),
		Solved:   append([]string(nil), b.Solved...),
	}
}

// Context carries the inputs a rule is evaluated against and collects the
// outputs its effect produces. A fresh Context is built for every rule under
// consideration.
type Context struct {
	Board           Board
	Stage           int
	Validator       Validator
	PreviousApplied bool

	// RequiredPress is ButtonNone unless the rule demands a press.
	RequiredPress Button
	// RequiredSolve is empty unless the rule demands a specific solve.
	RequiredSolve string
	// NewValidator is nil unless the rule replaces the validator.
	NewValidator Validator
}
