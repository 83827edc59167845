package stage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/louisbranch/sonundrum/internal/core/catalog"
	"github.com/louisbranch/sonundrum/internal/core/rule"
)

const tracerName = "github.com/louisbranch/sonundrum/internal/core/stage"

const (
	// DoNothing is announced before the final command when the current
	// validator rejects every possible text.
	DoNothing = rule.SimonSays + "Do nothing."
	// FinalStageLabel replaces the stage number during the final command.
	FinalStageLabel = "???"
)

var (
	// ErrCatalogRequired indicates a missing rule catalog.
	ErrCatalogRequired = errors.New("rule catalog is required")
	// ErrHostRequired indicates a missing host.
	ErrHostRequired = errors.New("host is required")
)

// Options configures an Engine.
type Options struct {
	Catalog  *catalog.Catalog
	Host     Host
	Boundary Boundary
	Observer Observer
	// Ignored names modules that never count towards progress.
	Ignored []string
	Logger  *zap.Logger
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
	// Validator overrides the opening validator.
	Validator rule.Validator
}

// Engine is the stage state machine of one module instance.
type Engine struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	host     Host
	boundary Boundary
	observer Observer
	ignored  map[string]struct{}
	logger   *zap.Logger
	tracer   trace.Tracer

	validator       rule.Validator
	started         bool
	stage           int
	requiredPress   rule.Button
	requiredSolve   string
	previousApplied bool
	finalizing      bool
	solveOnPress    bool
	solved          bool
	history         []string
	strikes         int
	lastText        string
}

// New builds an engine. The opening validator follows commands that start
// with "Simon Says: ".
func New(opts Options) (*Engine, error) {
	if opts.Catalog == nil {
		return nil, ErrCatalogRequired
	}
	if opts.Host == nil {
		return nil, ErrHostRequired
	}

	boundary := opts.Boundary
	if boundary == nil {
		boundary = nopBoundary{}
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	provider := opts.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	validator := opts.Validator
	if validator == nil {
		validator = rule.StartsWith(rule.SimonSays)
	}

	ignored := make(map[string]struct{}, len(opts.Ignored))
	for _, name := range opts.Ignored {
		ignored[name] = struct{}{}
	}

	return &Engine{
		catalog:   opts.Catalog,
		host:      opts.Host,
		boundary:  boundary,
		observer:  observer,
		ignored:   ignored,
		logger:    logger,
		tracer:    provider.Tracer(tracerName),
		validator: validator,
	}, nil
}

// Start explains the opening rule and gives the stage-0 command. Calling it
// again does nothing.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked(ctx)
}

func (e *Engine) startLocked(ctx context.Context) {
	if e.started {
		return
	}
	e.started = true
	e.logger.Info("To begin, there is exactly one rule.")
	e.logger.Info(`Whenever and only whenever Simon gives a command that begins with the phrase "Simon Says:", follow that command exactly.`)
	e.resolveLocked(ctx)
}

// AdvanceStage moves to the next stage and gives its command.
func (e *Engine) AdvanceStage(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.solved || e.finalizing {
		return
	}
	e.startLocked(ctx)
	e.stage++
	e.resolveLocked(ctx)
}

// resolveLocked draws the command of the current stage and applies it when the
// validator says it must be followed.
func (e *Engine) resolveLocked(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "stage.resolve", trace.WithAttributes(
		attribute.Int("stage", e.stage),
	))
	defer span.End()

	e.strikeMissedPressLocked()

	rc := e.contextLocked()
	r := e.catalog.Draw(rc)
	e.logger.Info("Simon's new statement", zap.String("text", r.Text()), zap.Int("stage", e.stage))

	applied := e.validator(rule.Query{Rule: r, PreviousApplied: e.previousApplied})
	e.previousApplied = applied
	if applied {
		r.Apply(&rc)
		e.logger.Info("Do apply this rule.")
	} else {
		e.logger.Info("Don't apply this rule.")
	}

	e.requiredPress = rc.RequiredPress
	e.requiredSolve = rc.RequiredSolve
	if e.requiredPress != rule.ButtonNone {
		e.logger.Info("This means that you need to press a button.", zap.Stringer("button", e.requiredPress))
	}
	if rc.NewValidator != nil {
		e.validator = rc.NewValidator
		e.logger.Info("This means that the conditions for when to apply rules have changed.")
	}
	if e.requiredSolve != "" {
		e.logger.Info("This means that you must solve a specific module next.", zap.String("module", e.requiredSolve))
	}

	span.SetAttributes(
		attribute.String("rule.shape", r.Shape().String()),
		attribute.Bool("rule.applied", applied),
	)
	e.observer.RuleResolved(r, applied, false)
	e.lastText = r.Text()
	e.boundary.ShowStage(fmt.Sprintf("%03d", e.stage))
	e.boundary.ShowText(r.Text())
}

// Finalize gives the final command. The required press it produces solves the
// module.
func (e *Engine) Finalize(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.solved || e.finalizing {
		return
	}
	e.startLocked(ctx)
	e.finalizeLocked(ctx)
}

func (e *Engine) finalizeLocked(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "stage.finalize", trace.WithAttributes(
		attribute.Int("stage", e.stage),
	))
	defer span.End()

	e.finalizing = true
	e.strikeMissedPressLocked()
	e.boundary.ShowStage(FinalStageLabel)

	applied := e.validator(rule.Query{Rule: rule.DummyApplied(), PreviousApplied: e.previousApplied})
	notApplied := e.validator(rule.Query{Rule: rule.DummyNotApplied(), PreviousApplied: e.previousApplied})
	if !applied && !notApplied {
		e.logger.Info("Simon's statement", zap.String("text", DoNothing))
		e.boundary.ShowText(DoNothing)
		e.previousApplied = !e.previousApplied
		span.AddEvent("do-nothing")
	}

	rc := e.contextLocked()
	validator := e.validator
	previous := e.previousApplied
	r := e.catalog.DrawFinal(rc, func(candidate rule.Rule) bool {
		return validator(rule.Query{Rule: candidate, PreviousApplied: previous})
	})

	e.logger.Info("Simon's last statement", zap.String("text", r.Text()))
	e.logger.Info("Do apply this rule.")
	e.logger.Info("This means that you need to press a button.")

	r.Apply(&rc)
	e.requiredPress = rc.RequiredPress
	e.solveOnPress = true

	span.SetAttributes(attribute.String("rule.shape", r.Shape().String()))
	e.observer.RuleResolved(r, true, true)
	e.lastText = r.Text()
	e.boundary.ShowText(r.Text())
}

// Poll compares the host's solved modules with the ones already seen. New
// solves settle a required-solve obligation and advance one stage each; once
// every collaborating module is solved the final command is given. Polls that
// report nothing new change nothing.
func (e *Engine) Poll(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.solved {
		return
	}
	e.startLocked(ctx)

	ctx, span := e.tracer.Start(ctx, "stage.poll")
	defer span.End()

	required := len(e.filterIgnored(e.host.SolvableModules()))
	fresh := subtract(e.filterIgnored(e.host.SolvedModules()), e.history)
	if len(fresh) > 0 {
		e.history = append(e.history, fresh...)
		span.SetAttributes(attribute.Int("solves", len(fresh)))
		if e.requiredSolve != "" {
			if containsName(fresh, e.requiredSolve) {
				e.logger.Info("Correct solve.", zap.String("module", e.requiredSolve))
			} else {
				e.logger.Info("Incorrect solve. Strike!", zap.String("module", e.requiredSolve), zap.Strings("solved", fresh))
				e.strikeLocked()
			}
			e.requiredSolve = ""
		}
	}

	if e.finalizing {
		return
	}
	progress := len(e.history)
	if progress >= required {
		e.finalizeLocked(ctx)
		return
	}
	for e.stage < progress {
		e.stage++
		e.resolveLocked(ctx)
	}
}

// PressResult describes what a button press did.
type PressResult int

const (
	PressIgnored PressResult = iota
	PressAccepted
	PressStrike
	PressSolved
)

func (r PressResult) String() string {
	switch r {
	case PressAccepted:
		return "accepted"
	case PressStrike:
		return "strike"
	case PressSolved:
		return "solved"
	default:
		return "ignored"
	}
}

// Press handles a button press. Presses after the module is solved are
// ignored; a press that is not the required one is a strike and leaves the
// obligation in place.
func (e *Engine) Press(ctx context.Context, button rule.Button) PressResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.solved {
		return PressIgnored
	}

	_, span := e.tracer.Start(ctx, "stage.press", trace.WithAttributes(
		attribute.String("button", button.String()),
	))
	defer span.End()

	if button.Valid() && button == e.requiredPress {
		e.logger.Info("Good button press.", zap.Stringer("button", button))
		e.requiredPress = rule.ButtonNone
		if e.solveOnPress {
			e.logger.Info("Module solved!")
			e.solved = true
			e.boundary.Pass()
			return PressSolved
		}
		return PressAccepted
	}

	e.logger.Info("You pressed a button when you weren't supposed to. Strike!", zap.Stringer("button", button))
	e.strikeLocked()
	return PressStrike
}

// RequiredPress returns the button currently owed, or rule.ButtonNone.
func (e *Engine) RequiredPress() rule.Button {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.requiredPress
}

// Solved reports whether the module has been solved.
func (e *Engine) Solved() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.solved
}

func (e *Engine) strikeMissedPressLocked() {
	if e.requiredPress == rule.ButtonNone {
		return
	}
	e.logger.Info("You were required to press a button and you didn't. Strike!", zap.Stringer("button", e.requiredPress))
	e.requiredPress = rule.ButtonNone
	e.strikeLocked()
}

func (e *Engine) strikeLocked() {
	e.strikes++
	e.boundary.Strike()
}

// contextLocked snapshots the session into a fresh rule context.
func (e *Engine) contextLocked() rule.Context {
	return rule.Context{
		Board: rule.Board{
			Solvable: e.host.SolvableModules(),
			Solved:   e.host.SolvedModules(),
		}.Clone(),
		Stage:           e.stage,
		Validator:       e.validator,
		PreviousApplied: e.previousApplied,
	}
}

func (e *Engine) filterIgnored(names []string) []string {
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := e.ignored[name]; ok {
			continue
		}
		kept = append(kept, name)
	}
	return kept
}

// subtract removes one occurrence from names for every entry of seen.
func subtract(names, seen []string) []string {
	counts := make(map[string]int, len(seen))
	for _, name := range seen {
		counts[name]++
	}
	var fresh []string
	for _, name := range names {
		if counts[name] > 0 {
			counts[name]--
			continue
		}
		fresh = append(fresh, name)
	}
	return fresh
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
