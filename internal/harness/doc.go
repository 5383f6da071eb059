// Package harness runs scripted todo-list scenarios.
//
// A scenario drives a todo.Store through a list of steps and then checks
// assertions against the resulting views and the persisted slot. It is used
// for conformance tests and by the `todos scenario` command.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: buy_milk
//	description: "Completed items are cleared, pending ones stay"
//	slot: '[{"id":"seed","text":"Old","done":false,"createdAt":1}]'  # optional
//	steps:
//	  - op: add
//	    text: "Buy milk"
//	  - op: toggle
//	    ref: "Buy milk"
//	    expect: { ok: true }
//	  - op: set_filter
//	    filter: done
//	  - op: clear_completed
//	  - op: reload
//	assertions:
//	  - type: visible_order
//	    filter: all
//	    texts: ["Buy milk"]
//	  - type: stats
//	    stats: { total: 1, pending: 1, done: 0 }
//
// Steps name items by text through ref; the first item in list order with
// that text is used. A ref that matches nothing resolves to an id no item
// has, so toggle and remove exercise their no-op path.
//
// # Assertion Types
//
//   - visible_order: items visible under filter (or the active filter) have exactly these texts
//   - persisted: the slot holds exactly these texts, in order
//   - stats: total/pending/done counts
//   - filter: the active filter
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory SQLite slot, sequential ids ("todo-1",
// "todo-2", ...) and a deterministic clock, so the final snapshot is
// byte-identical across runs and can be compared against golden files.
package harness
