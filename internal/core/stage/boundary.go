package stage

import "github.com/louisbranch/sonundrum/internal/core/rule"

// Host exposes the collaborating modules of the bomb. Names may repeat.
type Host interface {
	SolvableModules() []string
	SolvedModules() []string
}

// Boundary receives the engine's outputs.
type Boundary interface {
	Strike()
	Pass()
	ShowText(text string)
	ShowStage(label string)
}

// Observer is notified of every resolved rule.
type Observer interface {
	RuleResolved(r rule.Rule, applied, final bool)
}

type nopBoundary struct{}

func (nopBoundary) Strike()          {}
func (nopBoundary) Pass()            {}
func (nopBoundary) ShowText(string)  {}
func (nopBoundary) ShowStage(string) {}

type nopObserver struct{}

func (nopObserver) RuleResolved(rule.Rule, bool, bool) {}
