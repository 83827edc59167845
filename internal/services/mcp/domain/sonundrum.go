package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/sonundrum/internal/core/stage"
	"github.com/louisbranch/sonundrum/internal/services/module"
)

// defaultForceSolveTimeout bounds a force solve that waits on other modules.
const defaultForceSolveTimeout = 5 * time.Second

// Module is the Simon Sonundrum instance the tools drive.
type Module interface {
	HandleCommand(ctx context.Context, command string) (stage.PressResult, error)
	ForceSolve(ctx context.Context) error
	Status() module.Status
	Help() string
}

// Bomb is the simulated bomb the tools inspect and solve modules on.
type Bomb interface {
	Solve(name string) error
	SolvedModules() []string
	Unsolved() []string
	Strikes() int
}

// PressInput represents the MCP tool input for pressing a button.
type PressInput struct {
	Button string `json:"button" jsonschema:"button to press: tl, tr, bl or br"`
}

// PressResult represents the MCP tool output for a button press.
type PressResult struct {
	Result string       `json:"result" jsonschema:"accepted, strike, solved or ignored"`
	Status StatusResult `json:"status" jsonschema:"module status after the press"`
}

// ForceSolveInput represents the MCP tool input for a forced solve.
type ForceSolveInput struct {
	TimeoutSeconds int `json:"timeout_seconds,omitempty" jsonschema:"how long to wait for the other modules, default 5"`
}

// ForceSolveResult represents the MCP tool output for a forced solve.
type ForceSolveResult struct {
	Solved bool         `json:"solved" jsonschema:"whether the module was solved in time"`
	Status StatusResult `json:"status" jsonschema:"module status after the attempt"`
}

// StatusInput represents the MCP tool input for reading the module status.
type StatusInput struct{}

// StatusResult is what a player can see of the module and its bomb.
type StatusResult struct {
	ID       int      `json:"id" jsonschema:"module instance number"`
	Name     string   `json:"name" jsonschema:"module name"`
	Stage    string   `json:"stage" jsonschema:"stage counter label"`
	Text     string   `json:"text" jsonschema:"Simon's current statement"`
	Lines    []string `json:"lines" jsonschema:"statement wrapped as on the display"`
	Phase    string   `json:"phase" jsonschema:"idle, awaiting-obligation, finalizing or solved"`
	Solved   bool     `json:"solved" jsonschema:"whether the module is solved"`
	Strikes  int      `json:"strikes" jsonschema:"strikes on the bomb"`
	Unsolved []string `json:"unsolved" jsonschema:"modules on the bomb not solved yet"`
	Help     string   `json:"help" jsonschema:"chat command help"`
}

// PressTool defines the MCP tool schema for button presses.
func PressTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "sonundrum_press",
		Description: "Presses one of Simon Sonundrum's four buttons",
	}
}

// ForceSolveTool defines the MCP tool schema for forced solves.
func ForceSolveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "sonundrum_force_solve",
		Description: "Presses every owed button until Simon Sonundrum is solved",
	}
}

// StatusTool defines the MCP tool schema for the module status.
func StatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "sonundrum_status",
		Description: "Shows Simon's statement, the stage counter and the bomb",
	}
}

// PressHandler presses a button named by a chat-style token.
func PressHandler(m Module, b Bomb) mcp.ToolHandlerFor[PressInput, PressResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PressInput) (*mcp.CallToolResult, PressResult, error) {
		result, err := m.HandleCommand(ctx, input.Button)
		if err != nil {
			return nil, PressResult{}, fmt.Errorf("press %q: %w", strings.TrimSpace(input.Button), err)
		}
		status := statusOf(m, b)
		return callToolResult(status), PressResult{Result: result.String(), Status: status}, nil
	}
}

// ForceSolveHandler auto-presses until the module is solved or the timeout
// ends. Running out of time is reported as solved=false.
func ForceSolveHandler(m Module, b Bomb) mcp.ToolHandlerFor[ForceSolveInput, ForceSolveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ForceSolveInput) (*mcp.CallToolResult, ForceSolveResult, error) {
		if input.TimeoutSeconds < 0 {
			return nil, ForceSolveResult{}, fmt.Errorf("timeout_seconds must not be negative")
		}
		timeout := defaultForceSolveTimeout
		if input.TimeoutSeconds > 0 {
			timeout = time.Duration(input.TimeoutSeconds) * time.Second
		}
		runCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		err := m.ForceSolve(runCtx)
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, ForceSolveResult{}, fmt.Errorf("force solve: %w", err)
		}
		status := statusOf(m, b)
		return callToolResult(status), ForceSolveResult{Solved: status.Solved, Status: status}, nil
	}
}

// StatusHandler reports the module status.
func StatusHandler(m Module, b Bomb) mcp.ToolHandlerFor[StatusInput, StatusResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusResult, error) {
		status := statusOf(m, b)
		return callToolResult(status), status, nil
	}
}

func statusOf(m Module, b Bomb) StatusResult {
	s := m.Status()
	return StatusResult{
		ID:       s.ID,
		Name:     s.Name,
		Stage:    s.Screen.Stage,
		Text:     s.Screen.Text,
		Lines:    s.Screen.Lines,
		Phase:    s.State.Phase.String(),
		Solved:   s.State.Solved,
		Strikes:  b.Strikes(),
		Unsolved: b.Unsolved(),
		Help:     m.Help(),
	}
}

// callToolResult tags the result with the module it reports on.
func callToolResult(status StatusResult) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Meta: map[string]any{
			"module": fmt.Sprintf("%s #%d", status.Name, status.ID),
		},
	}
}
