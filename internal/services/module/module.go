package module

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/louisbranch/sonundrum/internal/core/catalog"
	"github.com/louisbranch/sonundrum/internal/core/rule"
	"github.com/louisbranch/sonundrum/internal/core/stage"
	"github.com/louisbranch/sonundrum/internal/platform/timeouts"
)

// HelpFormat is the chat help text; the verb takes the module number.
const HelpFormat = `Use "!%d tl" to press that button. Valid buttons are tl, tr, bl, and br.`

var (
	// ErrBombRequired indicates a missing bomb.
	ErrBombRequired = errors.New("bomb is required")
	// ErrUnknownCommand indicates a chat command that names no button.
	ErrUnknownCommand = errors.New("unknown command")
)

// instances numbers modules in creation order, starting at 1.
var instances atomic.Int64

// Bomb is the host a module lives on.
type Bomb interface {
	stage.Host
	Solve(name string) error
	AddStrike()
}

// Options configures a Module.
type Options struct {
	Bomb Bomb
	Seed int64
	// Self is the module's name on the bomb. Defaults to catalog.DefaultSelf.
	Self string
	// Ignored lists modules that never count towards progress. Self is
	// always added.
	Ignored []string
	// Catalog overrides the seeded default catalog.
	Catalog        *catalog.Catalog
	Logger         *zap.Logger
	Metrics        *Metrics
	TracerProvider trace.TracerProvider
	PollInterval   time.Duration
	ForceSolveStep time.Duration
}

// Module is one running Simon Sonundrum.
type Module struct {
	id       int
	self     string
	bomb     Bomb
	engine   *stage.Engine
	screen   *Screen
	logger   *zap.Logger
	metrics  *Metrics
	interval time.Duration
	step     time.Duration
}

// New builds a module and its engine. The first statement is given by Start
// or Run.
func New(opts Options) (*Module, error) {
	if opts.Bomb == nil {
		return nil, ErrBombRequired
	}
	self := opts.Self
	if self == "" {
		self = catalog.DefaultSelf
	}
	ignored := withSelf(opts.Ignored, self)
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = timeouts.PollInterval
	}
	step := opts.ForceSolveStep
	if step <= 0 {
		step = timeouts.ForceSolveStep
	}

	cat := opts.Catalog
	if cat == nil {
		var err error
		cat, err = catalog.New(catalog.Options{Seed: opts.Seed, Self: self, Ignored: ignored})
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
	}

	id := int(instances.Add(1))
	m := &Module{
		id:       id,
		self:     self,
		bomb:     opts.Bomb,
		screen:   &Screen{},
		logger:   logger.Named(fmt.Sprintf("%s #%d", self, id)),
		metrics:  opts.Metrics,
		interval: interval,
		step:     step,
	}

	engineOpts := stage.Options{
		Catalog:        cat,
		Host:           opts.Bomb,
		Boundary:       boundary{m: m},
		Ignored:        ignored,
		Logger:         m.logger,
		TracerProvider: opts.TracerProvider,
	}
	if opts.Metrics != nil {
		engineOpts.Observer = opts.Metrics
	}
	engine, err := stage.New(engineOpts)
	if err != nil {
		return nil, fmt.Errorf("stage engine: %w", err)
	}
	m.engine = engine
	return m, nil
}

// ID returns the instance number.
func (m *Module) ID() int { return m.id }

// Name returns the module's name on the bomb.
func (m *Module) Name() string { return m.self }

// Help returns the chat help text for this instance.
func (m *Module) Help() string { return fmt.Sprintf(HelpFormat, m.id) }

// Screen returns the module display.
func (m *Module) Screen() *Screen { return m.screen }

// Start gives the opening statement.
func (m *Module) Start(ctx context.Context) { m.engine.Start(ctx) }

// Poll checks the bomb once.
func (m *Module) Poll(ctx context.Context) { m.engine.Poll(ctx) }

// Run starts the module and polls the bomb until ctx is done.
func (m *Module) Run(ctx context.Context) error {
	m.engine.Start(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.engine.Poll(ctx)
		}
	}
}

// Press presses a button.
func (m *Module) Press(ctx context.Context, button rule.Button) stage.PressResult {
	result := m.engine.Press(ctx, button)
	m.metrics.press(result)
	return result
}

// HandleCommand presses the button named by a chat command (tl, tr, bl, br).
func (m *Module) HandleCommand(ctx context.Context, command string) (stage.PressResult, error) {
	button, err := rule.ParseButton(command)
	if err != nil {
		return stage.PressIgnored, fmt.Errorf("%w %q: %s", ErrUnknownCommand, strings.TrimSpace(command), m.Help())
	}
	return m.Press(ctx, button), nil
}

// ForceSolve presses every required button as soon as it is owed, until the
// module is solved or ctx is done. The bomb is polled between presses.
func (m *Module) ForceSolve(ctx context.Context) error {
	m.logger.Info("Module force solved.")
	m.engine.Start(ctx)
	ticker := time.NewTicker(m.step)
	defer ticker.Stop()
	for !m.engine.Solved() {
		if button := m.engine.RequiredPress(); button != rule.ButtonNone {
			m.Press(ctx, button)
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.engine.Poll(ctx)
		}
	}
	return nil
}

// Status is a snapshot of a module.
type Status struct {
	ID     int
	Name   string
	State  stage.State
	Screen ScreenState
}

// Status returns the current module snapshot.
func (m *Module) Status() Status {
	return Status{
		ID:     m.id,
		Name:   m.self,
		State:  m.engine.State(),
		Screen: m.screen.State(),
	}
}

// boundary carries engine outputs to the bomb, screen and metrics.
type boundary struct {
	m *Module
}

func (b boundary) Strike() {
	b.m.bomb.AddStrike()
	b.m.metrics.strike()
}

func (b boundary) Pass() {
	if err := b.m.bomb.Solve(b.m.self); err != nil {
		b.m.logger.Warn("mark module solved", zap.Error(err))
	}
	b.m.metrics.pass()
}

func (b boundary) ShowText(text string)   { b.m.screen.setText(text) }
func (b boundary) ShowStage(label string) { b.m.screen.setStage(label) }

// withSelf returns names plus self, without duplicates.
func withSelf(names []string, self string) []string {
	seen := make(map[string]struct{}, len(names)+1)
	out := make([]string, 0, len(names)+1)
	for _, name := range append([]string{self}, names...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
