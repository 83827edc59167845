// Package bomb simulates the host a module lives on: the list of modules on
// the bomb, which of them are solved, and the strike counter.
package bomb

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownModule indicates a name that is not on the bomb.
	ErrUnknownModule = errors.New("module is not on the bomb")
	// ErrAlreadySolved indicates every instance of a module is already solved.
	ErrAlreadySolved = errors.New("module is already solved")
)

// Bomb is a thread-safe simulated host. Module names may repeat; each entry
// is one instance.
type Bomb struct {
	mu      sync.RWMutex
	modules []string
	solved  []string
	strikes int
}

// New builds a bomb carrying the given modules, in order.
func New(modules ...string) *Bomb {
	return &Bomb{modules: append([]string(nil), modules...)}
}

// SolvableModules returns every module on the bomb, duplicates included.
func (b *Bomb) SolvableModules() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.modules...)
}

// SolvedModules returns the solved instances in solve order.
func (b *Bomb) SolvedModules() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.solved...)
}

// Unsolved returns one entry per instance not solved yet, in bomb order.
func (b *Bomb) Unsolved() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.unsolvedLocked()
}

func (b *Bomb) unsolvedLocked() []string {
	remaining := make(map[string]int, len(b.solved))
	for _, name := range b.solved {
		remaining[name]++
	}
	var out []string
	for _, name := range b.modules {
		if remaining[name] > 0 {
			remaining[name]--
			continue
		}
		out = append(out, name)
	}
	return out
}

// Solve marks one unsolved instance of name as solved.
func (b *Bomb) Solve(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	total, solved := 0, 0
	for _, n := range b.modules {
		if n == name {
			total++
		}
	}
	if total == 0 {
		return fmt.Errorf("solve %q: %w", name, ErrUnknownModule)
	}
	for _, n := range b.solved {
		if n == name {
			solved++
		}
	}
	if solved >= total {
		return fmt.Errorf("solve %q: %w", name, ErrAlreadySolved)
	}
	b.solved = append(b.solved, name)
	return nil
}

// SolveNth solves the n-th unsolved instance (1-based) among those not named
// in skip, and returns its name.
func (b *Bomb) SolveNth(n int, skip ...string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var candidates []string
	for _, name := range b.unsolvedLocked() {
		if !contains(skip, name) {
			candidates = append(candidates, name)
		}
	}
	if n < 1 || n > len(candidates) {
		return "", fmt.Errorf("solve #%d of %d unsolved: %w", n, len(candidates), ErrUnknownModule)
	}
	name := candidates[n-1]
	b.solved = append(b.solved, name)
	return name, nil
}

// AddStrike records a strike.
func (b *Bomb) AddStrike() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strikes++
}

// Strikes returns the strike count.
func (b *Bomb) Strikes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.strikes
}

// Defused reports whether every module on the bomb is solved.
func (b *Bomb) Defused() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.modules) > 0 && len(b.solved) == len(b.modules)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
