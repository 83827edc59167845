// Package catalog draws random rules from a weighted table of rule shapes.
//
// # Determinism
//
// A Catalog owns a math/rand source. Given the same Options.Seed and the same
// sequence of calls with the same boards, a Catalog produces the same rules,
// which makes whole sessions replayable.
//
// # Concurrency
//
// A Catalog is not safe for concurrent use; the stage engine serialises access.
package catalog

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/louisbranch/sonundrum/internal/core/dice"
	"github.com/louisbranch/sonundrum/internal/core/rule"
)

var (
	// ErrEmptyCatalog indicates a catalog without non-terminal generators.
	ErrEmptyCatalog = errors.New("rule catalog has no generators")
	// ErrInvalidWeight indicates a generator with a non-positive weight.
	ErrInvalidWeight = errors.New("rule generator weight must be positive")
	// ErrGeneratorRequired indicates a nil generator in the table.
	ErrGeneratorRequired = errors.New("rule generator is required")
)

// DefaultSelf is the module name the catalog treats as itself.
const DefaultSelf = "Simon Sonundrum"

// DefaultDenylist names modules whose presence disables solve-next rules.
var DefaultDenylist = []string{
	"Organization",
	"Mytery Module",
	"Encrypted Hangman",
	"Turn The Keys",
	"Custom Keys",
	"42",
	"501",
	"The Heart",
	"Simon",
}

// Generator produces one concrete rule per call.
type Generator interface {
	Shape() rule.Shape
	Weight() int
	Generate(c *Catalog, board rule.Board) rule.Rule
}

// Options configures a Catalog.
type Options struct {
	// Seed initialises the random source when Rand is nil.
	Seed int64
	// Rand overrides the random source.
	Rand *rand.Rand
	// Self is this module's own name. Defaults to DefaultSelf.
	Self string
	// Ignored names modules that never count as collaborators. Self is
	// always ignored.
	Ignored []string
	// Denylist defaults to DefaultDenylist when nil.
	Denylist []string
	// Generators defaults to DefaultGenerators() when nil.
	Generators []Generator
	// Final defaults to the button generator when nil.
	Final Generator
}

// Catalog is a weighted registry of rule generators.
type Catalog struct {
	generators   []Generator
	die          dice.Weighted
	final        Generator
	rng          *rand.Rand
	self         string
	ignored      map[string]struct{}
	incompatible map[string]struct{}
}

// New validates the generator table and computes its cumulative weights.
func New(opts Options) (*Catalog, error) {
	generators := opts.Generators
	if generators == nil {
		generators = DefaultGenerators()
	}
	if len(generators) == 0 {
		return nil, ErrEmptyCatalog
	}

	weights := make([]int, len(generators))
	for i, g := range generators {
		if g == nil {
			return nil, fmt.Errorf("generator %d: %w", i, ErrGeneratorRequired)
		}
		if g.Weight() <= 0 {
			return nil, fmt.Errorf("generator %d (%s): %w", i, g.Shape(), ErrInvalidWeight)
		}
		weights[i] = g.Weight()
	}
	die, err := dice.NewWeighted(weights)
	if err != nil {
		return nil, fmt.Errorf("weight table: %w", err)
	}

	final := opts.Final
	if final == nil {
		final = buttonGenerator{weight: 1}
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	self := opts.Self
	if self == "" {
		self = DefaultSelf
	}

	denylist := opts.Denylist
	if denylist == nil {
		denylist = DefaultDenylist
	}

	ignored := make(map[string]struct{}, len(opts.Ignored))
	incompatible := make(map[string]struct{}, len(denylist)+len(opts.Ignored))
	for _, name := range opts.Ignored {
		ignored[name] = struct{}{}
		incompatible[name] = struct{}{}
	}
	for _, name := range denylist {
		incompatible[name] = struct{}{}
	}
	ignored[self] = struct{}{}
	delete(incompatible, self)

	return &Catalog{
		generators:   append([]Generator(nil), generators...),
		die:          die,
		final:        final,
		rng:          rng,
		self:         self,
		ignored:      ignored,
		incompatible: incompatible,
	}, nil
}

// Intn returns a uniform number in [0, n) from the catalog's random source.
func (c *Catalog) Intn(n int) int {
	return c.rng.Intn(n)
}

// Prefix returns rule.SimonSays or "" with equal probability.
func (c *Catalog) Prefix() string {
	if dice.Coin(c.rng) {
		return rule.SimonSays
	}
	return ""
}

// RandomRule draws a generator from the weighted table and invokes it once.
// The first generator whose cumulative weight exceeds the draw wins.
func (c *Catalog) RandomRule(board rule.Board) rule.Rule {
	return c.generators[c.die.Roll(c.rng)].Generate(c, board)
}

// RandomFinalRule invokes the terminal generator.
func (c *Catalog) RandomFinalRule(board rule.Board) rule.Rule {
	return c.final.Generate(c, board)
}

// Draw returns the first randomly drawn rule allowed in ctx.
func (c *Catalog) Draw(ctx rule.Context) rule.Rule {
	for {
		r := c.RandomRule(ctx.Board)
		if r.IsAllowed(ctx) {
			return r
		}
	}
}

// DrawFinal returns the first terminal rule allowed in ctx that accept
// accepts. A nil accept accepts every allowed rule.
func (c *Catalog) DrawFinal(ctx rule.Context, accept func(rule.Rule) bool) rule.Rule {
	for {
		r := c.RandomFinalRule(ctx.Board)
		if !r.IsAllowed(ctx) {
			continue
		}
		if accept == nil || accept(r) {
			return r
		}
	}
}

// SolveCandidates returns the distinct collaborating modules that can still be
// solved, in board order.
func (c *Catalog) SolveCandidates(board rule.Board) []string {
	solved := make(map[string]struct{}, len(board.Solved))
	for _, name := range board.Solved {
		solved[name] = struct{}{}
	}
	seen := make(map[string]struct{}, len(board.Solvable))
	var candidates []string
	for _, name := range board.Solvable {
		if _, ok := solved[name]; ok {
			continue
		}
		if _, ok := c.ignored[name]; ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		candidates = append(candidates, name)
	}
	return candidates
}

// SolveCompatible reports whether the board can host a solve-next rule: no
// denylisted or ignored module is present, and at most one copy of this
// module.
func (c *Catalog) SolveCompatible(board rule.Board) bool {
	selfCount := 0
	for _, name := range board.Solvable {
		if name == c.self {
			selfCount++
			continue
		}
		if _, ok := c.incompatible[name]; ok {
			return false
		}
	}
	return selfCount <= 1
}
