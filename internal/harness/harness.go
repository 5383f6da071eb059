package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/todos/internal/store"
	"github.com/roach88/todos/internal/testutil"
	"github.com/roach88/todos/internal/todo"
)

// Harness executes one scenario against a todo store.
type Harness struct {
	slot   *store.Store
	todos  *todo.Store
	clock  *testutil.DeterministicClock
	ids    *testutil.SequentialIDGenerator
	logger *slog.Logger
	seq    int64
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory slot for isolation.
//
// Execution flow:
// 1. Create fresh in-memory slot, seeded from scenario.Slot if set
// 2. Construct a todo store over it (hydration)
// 3. Execute steps, checking expect clauses
// 4. Evaluate assertions
// 5. Capture the final snapshot
//
// The returned error covers harness failures only; scenario failures are
// reported through Result.Pass and Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if scenario.Slot != "" {
		if err := st.Put(ctx, todo.DefaultKey, []byte(scenario.Slot)); err != nil {
			return nil, fmt.Errorf("failed to seed slot: %w", err)
		}
	}

	h := &Harness{
		slot:   st,
		clock:  testutil.NewDeterministicClock(),
		ids:    testutil.NewSequentialIDGenerator(""),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	h.todos = h.newStore(ctx)

	result := NewResult()
	for i, step := range scenario.Steps {
		h.executeStep(ctx, i, step, result)
	}

	actx := &AssertionContext{
		Todos: h.todos,
		Slot:  st,
		Ctx:   ctx,
	}
	for _, errMsg := range EvaluateAssertions(scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	result.Final = Snapshot{
		Filter: h.todos.Filter(),
		Items:  h.todos.Items(),
		Stats:  h.todos.Stats(),
	}

	return result, nil
}

func (h *Harness) newStore(ctx context.Context) *todo.Store {
	return todo.New(ctx, h.slot,
		todo.WithLogger(h.logger),
		todo.WithClock(h.clock),
		todo.WithIDGenerator(h.ids),
	)
}

// executeStep runs one step, records it in the trace and checks its expect clause.
func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) {
	h.seq++
	event := TraceEvent{Seq: h.seq, Op: step.Op}

	switch step.Op {
	case OpAdd:
		event.Text = step.Text
		item, ok := h.todos.Add(ctx, step.Text)
		event.ID = item.ID
		event.OK = ok
	case OpToggle:
		event.Ref = step.Ref
		event.ID = h.resolve(step.Ref)
		event.OK = h.todos.Toggle(ctx, event.ID)
	case OpRemove:
		event.Ref = step.Ref
		event.ID = h.resolve(step.Ref)
		event.OK = h.todos.Remove(ctx, event.ID)
	case OpClearCompleted:
		event.Removed = h.todos.ClearCompleted(ctx)
		event.OK = true
	case OpSetFilter:
		event.Filter = step.Filter
		if err := h.todos.SetFilter(todo.Filter(step.Filter)); err != nil {
			event.Error = err.Error()
		} else {
			event.OK = true
		}
	case OpReload:
		h.todos = h.newStore(ctx)
		event.OK = true
	default:
		event.Error = fmt.Sprintf("unknown op %q", step.Op)
	}

	result.AddTrace(event)

	if step.Expect == nil {
		return
	}
	if step.Expect.OK != nil && *step.Expect.OK != event.OK {
		result.AddError(fmt.Sprintf("steps[%d] %s: expected ok=%t, got ok=%t",
			index, step.Op, *step.Expect.OK, event.OK))
	}
	if step.Expect.Removed != nil && *step.Expect.Removed != event.Removed {
		result.AddError(fmt.Sprintf("steps[%d] %s: expected removed=%d, got removed=%d",
			index, step.Op, *step.Expect.Removed, event.Removed))
	}
}

// resolve maps an item text to the id of the first item carrying it.
// Unknown refs map to an id that no item has.
func (h *Harness) resolve(ref string) string {
	text := todo.NormalizeText(ref)
	for _, item := range h.todos.Items() {
		if item.Text == text {
			return item.ID
		}
	}
	return "missing:" + ref
}
