package stage

import (
	"testing"

	"github.com/louisbranch/sonundrum/internal/core/catalog"
	"github.com/louisbranch/sonundrum/internal/core/rule"
)

// ruleScript hands out rules in order, then unprefixed top-left presses.
type ruleScript struct {
	rules []rule.Rule
}

func (s *ruleScript) Shape() rule.Shape { return rule.ShapeButton }
func (s *ruleScript) Weight() int       { return 1 }

func (s *ruleScript) Generate(*catalog.Catalog, rule.Board) rule.Rule {
	if len(s.rules) == 0 {
		return press("", rule.TopLeft)
	}
	next := s.rules[0]
	s.rules = s.rules[1:]
	return next
}

func press(prefix string, b rule.Button) rule.Rule {
	return rule.New(rule.ShapeButton, prefix, "Press the "+b.String()+" button.", func(ctx *rule.Context) {
		ctx.RequiredPress = b
	}, nil)
}

func solveNext(prefix, name string) rule.Rule {
	return rule.New(rule.ShapeSolveNext, prefix, "Solve "+name+" next.", func(ctx *rule.Context) {
		ctx.RequiredSolve = name
	}, nil)
}

func alternation(prefix string) rule.Rule {
	v := rule.Alternation()
	return rule.New(rule.ShapeAlternation, prefix, "Follow my commands when and only when you didn't follow the previous command.", func(ctx *rule.Context) {
		ctx.NewValidator = v
	}, nil)
}

func invert(prefix string) rule.Rule {
	return rule.New(rule.ShapeInvert, prefix, "Follow my commands when and only when you wouldn't have immediately before this command.", func(ctx *rule.Context) {
		ctx.NewValidator = rule.Invert(ctx.Validator)
	}, nil)
}

type fakeHost struct {
	solvable []string
	solved   []string
}

func (h *fakeHost) SolvableModules() []string { return append([]string(nil), h.solvable...) }
func (h *fakeHost) SolvedModules() []string   { return append([]string(nil), h.solved...) }

func (h *fakeHost) solve(names ...string) {
	h.solved = append(h.solved, names...)
}

type recordingBoundary struct {
	strikes int
	passes  int
	texts   []string
	stages  []string
}

func (b *recordingBoundary) Strike()                { b.strikes++ }
func (b *recordingBoundary) Pass()                  { b.passes++ }
func (b *recordingBoundary) ShowText(text string)   { b.texts = append(b.texts, text) }
func (b *recordingBoundary) ShowStage(label string) { b.stages = append(b.stages, label) }

func (b *recordingBoundary) lastText() string {
	if len(b.texts) == 0 {
		return ""
	}
	return b.texts[len(b.texts)-1]
}

type countingObserver struct {
	resolved int
	applied  int
	final    int
}

func (o *countingObserver) RuleResolved(_ rule.Rule, applied, final bool) {
	o.resolved++
	if applied {
		o.applied++
	}
	if final {
		o.final++
	}
}

type fixture struct {
	engine   *Engine
	host     *fakeHost
	boundary *recordingBoundary
}

// newScriptedFixture builds an engine whose non-final commands come from
// rules, in order.
func newScriptedFixture(t *testing.T, solvable []string, opts Options, rules ...rule.Rule) fixture {
	t.Helper()
	cat, err := catalog.New(catalog.Options{
		Seed:       1,
		Generators: []catalog.Generator{&ruleScript{rules: rules}},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return newFixture(t, cat, solvable, opts)
}

func newFixture(t *testing.T, cat *catalog.Catalog, solvable []string, opts Options) fixture {
	t.Helper()
	host := &fakeHost{solvable: solvable}
	boundary := &recordingBoundary{}
	opts.Catalog = cat
	opts.Host = host
	opts.Boundary = boundary
	engine, err := New(opts)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return fixture{engine: engine, host: host, boundary: boundary}
}
