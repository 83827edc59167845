// Package tui renders a module and its simulated bomb in the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/sonundrum/internal/core/rule"
	"github.com/louisbranch/sonundrum/internal/core/stage"
	"github.com/louisbranch/sonundrum/internal/services/module"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// refreshInterval is how often the view picks up changes made by the poll
// loop.
const refreshInterval = 100 * time.Millisecond

// Module is the instance shown on screen.
type Module interface {
	Press(ctx context.Context, button rule.Button) stage.PressResult
	ForceSolve(ctx context.Context) error
	Status() module.Status
	Help() string
}

// Bomb is the simulated bomb the player solves other modules on.
type Bomb interface {
	SolveNth(n int, skip ...string) (string, error)
	Unsolved() []string
	Strikes() int
	Defused() bool
}

// buttonKeys maps keyboard keys to the buttons in screen layout.
var buttonKeys = map[string]rule.Button{
	"q": rule.TopLeft,
	"w": rule.TopRight,
	"a": rule.BottomLeft,
	"s": rule.BottomRight,
}

type tickMsg time.Time

type forceDoneMsg struct {
	err error
}

// Model is the bubbletea model of the game screen.
type Model struct {
	ctx     context.Context
	module  Module
	bomb    Bomb
	message string
	forcing bool
	flash   rule.Button
}

// New builds the model. ctx bounds the forced solve.
func New(ctx context.Context, m Module, b Bomb) Model {
	return Model{ctx: ctx, module: m, bomb: b}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case forceDoneMsg:
		m.forcing = false
		switch {
		case msg.err == nil:
			m.message = "Module force solved."
		case errors.Is(msg.err, context.Canceled):
		default:
			m.message = fmt.Sprintf("Force solve stopped: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "?":
		m.message = m.module.Help()
		return m, nil
	case "f":
		if m.forcing {
			return m, nil
		}
		m.forcing = true
		m.message = "Force solving..."
		ctx, mod := m.ctx, m.module
		return m, func() tea.Msg {
			return forceDoneMsg{err: mod.ForceSolve(ctx)}
		}
	}

	if button, ok := buttonKeys[key]; ok {
		m.flash = button
		switch m.module.Press(m.ctx, button) {
		case stage.PressStrike:
			m.message = "Strike!"
		case stage.PressSolved:
			m.message = "Module solved!"
		default:
			m.message = ""
		}
		return m, nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		name, err := m.bomb.SolveNth(int(key[0]-'0'), m.module.Status().Name)
		if err != nil {
			m.message = err.Error()
		} else {
			m.message = "Solved " + name + "."
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	status := m.module.Status()
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s #%d", status.Name, status.ID)))
	b.WriteString("  ")
	b.WriteString(stageStyle.Render(status.Screen.Stage))
	b.WriteString("\n\n")

	lines := status.Screen.Lines
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.WriteString(displayStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.button("q", rule.TopLeft), " ", m.button("w", rule.TopRight)))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.button("a", rule.BottomLeft), " ", m.button("s", rule.BottomRight)))
	b.WriteString("\n\n")

	if status.State.Solved {
		b.WriteString(solvedStyle.Render("SOLVED"))
		b.WriteString("\n")
	}
	b.WriteString(printer.Sprintf("Strikes: %d\n", m.bomb.Strikes()))

	b.WriteString("Other modules:\n")
	n := 0
	for _, name := range m.bomb.Unsolved() {
		if name == status.Name {
			continue
		}
		n++
		b.WriteString(fmt.Sprintf("  [%d] %s\n", n, name))
	}
	if n == 0 {
		b.WriteString(mutedStyle.Render("  all solved"))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("q/w/a/s press · 1-9 solve module · f force solve · ? help · ctrl+c quit"))
	return b.String()
}

func (m Model) button(key string, button rule.Button) string {
	style := buttonStyle
	if m.flash == button {
		style = pressedStyle
	}
	return style.Render(fmt.Sprintf("[%s] %s", key, button))
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	stageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(module.LineWidth + 4)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Width(18)

	pressedStyle = buttonStyle.
			BorderForeground(lipgloss.Color("212"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
