package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SolveModuleInput represents the MCP tool input for solving another module.
type SolveModuleInput struct {
	Name string `json:"name" jsonschema:"name of the module to mark solved"`
}

// SolveModuleResult represents the MCP tool output after solving a module.
type SolveModuleResult struct {
	Solved   []string `json:"solved" jsonschema:"solved modules in solve order"`
	Unsolved []string `json:"unsolved" jsonschema:"modules not solved yet"`
}

// SolveModuleTool defines the MCP tool schema for solving a bomb module.
func SolveModuleTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "bomb_solve_module",
		Description: "Marks one instance of another module on the bomb as solved",
	}
}

// SolveModuleHandler solves one instance of a named module. Simon Sonundrum
// itself is only solved through its buttons.
func SolveModuleHandler(m Module, b Bomb) mcp.ToolHandlerFor[SolveModuleInput, SolveModuleResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SolveModuleInput) (*mcp.CallToolResult, SolveModuleResult, error) {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, SolveModuleResult{}, fmt.Errorf("module name is required")
		}
		if name == m.Status().Name {
			return nil, SolveModuleResult{}, fmt.Errorf("%s is solved by pressing its buttons", name)
		}
		if err := b.Solve(name); err != nil {
			return nil, SolveModuleResult{}, err
		}
		return callToolResult(statusOf(m, b)), SolveModuleResult{
			Solved:   b.SolvedModules(),
			Unsolved: b.Unsolved(),
		}, nil
	}
}
