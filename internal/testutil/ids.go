package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDGenerator hands out ids of the form "<prefix>-<n>" starting at 1.
//
// This enables deterministic test execution and golden snapshot comparison:
// the same scenario always assigns the same ids to the same items.
//
// Thread-safety: SequentialIDGenerator is safe for concurrent use via internal mutex.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDGenerator creates a generator for the given prefix.
//
// If prefix is empty, ids look like "todo-1", "todo-2", ...
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "todo"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// Generate returns the next id in sequence.
func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
