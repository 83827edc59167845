// Package timeouts defines shared durations used across the commands.
// Centralizing these values prevents drift between the play and MCP surfaces
// and makes the durations discoverable.
package timeouts

import "time"

// PollInterval is how often a module compares the bomb's solved list with
// its own history.
const PollInterval = 100 * time.Millisecond

// ForceSolveStep paces the automatic presses of a forced solve.
const ForceSolveStep = 100 * time.Millisecond

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
