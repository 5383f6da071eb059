package todo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/roach88/todos/internal/store"
	"github.com/roach88/todos/internal/testutil"
)

// memSlot is an in-memory Slot that records writes and can be told to fail.
type memSlot struct {
	mu      sync.Mutex
	values  map[string][]byte
	puts    int
	failGet error
	failPut error
}

func newMemSlot() *memSlot {
	return &memSlot{values: make(map[string][]byte)}
}

func (m *memSlot) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	v, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, store.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (m *memSlot) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut != nil {
		return m.failPut
	}
	m.puts++
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memSlot) raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

func (m *memSlot) putCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

var errQuota = errors.New("quota exceeded")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore builds a deterministic store over slot.
func newTestStore(t *testing.T, slot Slot) *Store {
	t.Helper()
	return New(context.Background(), slot,
		WithLogger(discardLogger()),
		WithClock(testutil.NewDeterministicClock()),
		WithIDGenerator(testutil.NewSequentialIDGenerator("")),
	)
}

func texts(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Text
	}
	return out
}
