// Package domain translates MCP tool calls into module and bomb operations.
//
// The mapping is kept explicit so each tool reads as one step:
// - parse the tool input into a module command,
// - run it against the module or the simulated bomb,
// - and surface a structured status that MCP clients can render.
//
// The status never includes the owed press or solve, so a client has to read
// Simon's statements like a player would.
package domain
