package catalog

import (
	"fmt"
	"strings"

	"github.com/louisbranch/sonundrum/internal/core/rule"
)

// Rule weights of the default table.
const (
	ButtonWeight        = 7
	TextParityWeight    = 2
	InvertWeight        = 1
	SolveNextWeight     = 1
	AlternationWeight   = 1
	JuxtapositionWeight = 1
)

const (
	invertBody      = "Follow my commands when and only when you wouldn't have immediately before this command."
	alternationBody = "Follow my commands when and only when you didn't follow the previous command."
	unknownModule   = "???"
	nestingMarker   = "If"
)

// DefaultGenerators returns the six rule shapes in table order.
func DefaultGenerators() []Generator {
	return []Generator{
		buttonGenerator{weight: ButtonWeight},
		textParityGenerator{weight: TextParityWeight},
		invertGenerator{weight: InvertWeight},
		solveNextGenerator{weight: SolveNextWeight},
		alternationGenerator{weight: AlternationWeight},
		juxtapositionGenerator{weight: JuxtapositionWeight},
	}
}

type buttonGenerator struct{ weight int }

func (g buttonGenerator) Shape() rule.Shape { return rule.ShapeButton }
func (g buttonGenerator) Weight() int       { return g.weight }

func (g buttonGenerator) Generate(c *Catalog, _ rule.Board) rule.Rule {
	button := rule.Buttons[c.Intn(len(rule.Buttons))]
	return rule.New(
		rule.ShapeButton,
		c.Prefix(),
		fmt.Sprintf("Press the %s button.", button),
		func(ctx *rule.Context) { ctx.RequiredPress = button },
		nil,
	)
}

type textParityGenerator struct{ weight int }

func (g textParityGenerator) Shape() rule.Shape { return rule.ShapeTextParity }
func (g textParityGenerator) Weight() int       { return g.weight }

func (g textParityGenerator) Generate(c *Catalog, _ rule.Board) rule.Rule {
	class := rule.Vowels
	if c.Intn(2) == 1 {
		class = rule.LetterI
	}
	parity := rule.Even
	if c.Intn(2) == 1 {
		parity = rule.Odd
	}

	var condition string
	switch class {
	case rule.LetterI:
		condition = fmt.Sprintf("they have an %s amount of the letter I in them.", parity)
	default:
		condition = fmt.Sprintf("they have an %s amount of vowels in them. (Y is not a vowel.)", parity)
	}

	validator := rule.TextParity(class, parity)
	return rule.New(
		rule.ShapeTextParity,
		c.Prefix(),
		"Follow my commands when and only when "+condition,
		func(ctx *rule.Context) { ctx.NewValidator = validator },
		nil,
	)
}

type invertGenerator struct{ weight int }

func (g invertGenerator) Shape() rule.Shape { return rule.ShapeInvert }
func (g invertGenerator) Weight() int       { return g.weight }

func (g invertGenerator) Generate(c *Catalog, _ rule.Board) rule.Rule {
	return rule.New(
		rule.ShapeInvert,
		c.Prefix(),
		invertBody,
		func(ctx *rule.Context) { ctx.NewValidator = rule.Invert(ctx.Validator) },
		nil,
	)
}

type solveNextGenerator struct{ weight int }

func (g solveNextGenerator) Shape() rule.Shape { return rule.ShapeSolveNext }
func (g solveNextGenerator) Weight() int       { return g.weight }

func (g solveNextGenerator) Generate(c *Catalog, board rule.Board) rule.Rule {
	candidates := c.SolveCandidates(board)
	valid := len(candidates) > 0 && c.SolveCompatible(board)

	name := unknownModule
	if valid {
		name = candidates[c.Intn(len(candidates))]
	}
	return rule.New(
		rule.ShapeSolveNext,
		c.Prefix(),
		fmt.Sprintf("Solve %s next.", name),
		func(ctx *rule.Context) { ctx.RequiredSolve = name },
		func(rule.Context) bool { return valid },
	)
}

type alternationGenerator struct{ weight int }

func (g alternationGenerator) Shape() rule.Shape { return rule.ShapeAlternation }
func (g alternationGenerator) Weight() int       { return g.weight }

func (g alternationGenerator) Generate(c *Catalog, _ rule.Board) rule.Rule {
	validator := rule.Alternation()
	return rule.New(
		rule.ShapeAlternation,
		c.Prefix(),
		alternationBody,
		func(ctx *rule.Context) { ctx.NewValidator = validator },
		nil,
	)
}

// juxtapositionGenerator re-enters the catalog for its two embedded rules and
// refuses nested juxtapositions, so nesting never exceeds one level.
type juxtapositionGenerator struct{ weight int }

func (g juxtapositionGenerator) Shape() rule.Shape { return rule.ShapeJuxtaposition }
func (g juxtapositionGenerator) Weight() int       { return g.weight }

func (g juxtapositionGenerator) Generate(c *Catalog, board rule.Board) rule.Rule {
	followed := c.RandomRule(board)
	for strings.HasPrefix(followed.Body(), nestingMarker) {
		followed = c.RandomRule(board)
	}
	otherwise := c.RandomRule(board)
	for strings.HasPrefix(otherwise.Body(), nestingMarker) || otherwise.Body() == followed.Body() {
		otherwise = c.RandomRule(board)
	}
	return rule.Juxtapose(c.Prefix(), followed, otherwise)
}
