package rule

import "fmt"

// SimonSays is the conditional prefix a rule may carry.
const SimonSays = "Simon Says: "

// JuxtapositionFormat renders the body of a juxtaposition rule from the bodies
// of its two embedded rules. The embedded bodies keep their own punctuation.
const JuxtapositionFormat = "If you followed my previous command, %s Otherwise, %s"

// Shape identifies which catalog generator produced a rule.
type Shape int

const (
	ShapeUnspecified Shape = iota
	ShapeButton
	ShapeTextParity
	ShapeInvert
	ShapeSolveNext
	ShapeAlternation
	ShapeJuxtaposition
	ShapeSentinel
)

func (s Shape) String() string {
	switch s {
	case ShapeButton:
		return "button"
	case ShapeTextParity:
		return "text-parity"
	case ShapeInvert:
		return "invert"
	case ShapeSolveNext:
		return "solve-next"
	case ShapeAlternation:
		return "alternation"
	case ShapeJuxtaposition:
		return "juxtaposition"
	case ShapeSentinel:
		return "sentinel"
	default:
		return "unspecified"
	}
}

// Effect mutates the outputs of a rule context.
type Effect func(*Context)

// Allowance reports whether a rule may be shown in the given context.
type Allowance func(Context) bool

// Rule is one command given by Simon.
//
// Leaf rules carry their own effect and allowance. Juxtaposition rules carry
// neither: they hold the two embedded rules and delegate to them.
type Rule struct {
	prefix  string
	body    string
	shape   Shape
	apply   Effect
	allowed Allowance
	juxta   *juxtaposition
}

type juxtaposition struct {
	followed  Rule
	otherwise Rule
}

// New builds a leaf rule. A nil effect does nothing and a nil allowance always
// allows the rule.
func New(shape Shape, prefix, body string, apply Effect, allowed Allowance) Rule {
	return Rule{
		prefix:  prefix,
		body:    body,
		shape:   shape,
		apply:   apply,
		allowed: allowed,
	}
}

// Juxtapose builds a rule that applies followed when the previous command was
// followed and otherwise when it was not.
func Juxtapose(prefix string, followed, otherwise Rule) Rule {
	return Rule{
		prefix: prefix,
		body:   fmt.Sprintf(JuxtapositionFormat, followed.body, otherwise.body),
		shape:  ShapeJuxtaposition,
		juxta:  &juxtaposition{followed: followed, otherwise: otherwise},
	}
}

// DummyApplied is the non-empty sentinel used to probe the current validator
// before the final command.
func DummyApplied() Rule {
	return New(ShapeSentinel, "", "I", nil, nil)
}

// DummyNotApplied is the empty sentinel used to probe the current validator
// before the final command.
func DummyNotApplied() Rule {
	return New(ShapeSentinel, "", "", nil, nil)
}

// Prefix returns the conditional prefix, or "" when the rule has none.
func (r Rule) Prefix() string { return r.prefix }

// Body returns the display text without the prefix.
func (r Rule) Body() string { return r.body }

// Text returns the full display text.
func (r Rule) Text() string { return r.prefix + r.body }

// Shape returns the generator shape of the rule.
func (r Rule) Shape() Shape { return r.shape }

// Parts returns the embedded rules of a juxtaposition.
func (r Rule) Parts() (followed, otherwise Rule, ok bool) {
	if r.juxta == nil {
		return Rule{}, Rule{}, false
	}
	return r.juxta.followed, r.juxta.otherwise, true
}

// Apply runs the rule's effect against ctx. A juxtaposition runs exactly one
// embedded rule, chosen by ctx.PreviousApplied.
func (r Rule) Apply(ctx *Context) {
	if ctx == nil {
		return
	}
	if r.juxta != nil {
		if ctx.PreviousApplied {
			r.juxta.followed.Apply(ctx)
		} else {
			r.juxta.otherwise.Apply(ctx)
		}
		return
	}
	if r.apply != nil {
		r.apply(ctx)
	}
}

// IsAllowed reports whether the rule may be shown in ctx. A juxtaposition is
// never the first rule of a session and needs both embedded rules allowed.
func (r Rule) IsAllowed(ctx Context) bool {
	if r.juxta != nil {
		return ctx.Stage != 0 && r.juxta.followed.IsAllowed(ctx) && r.juxta.otherwise.IsAllowed(ctx)
	}
	if r.allowed == nil {
		return true
	}
	return r.allowed(ctx)
}
