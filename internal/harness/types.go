package harness

import "github.com/roach88/todos/internal/todo"

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Op      string `json:"op"`
	Text    string `json:"text,omitempty"`
	Ref     string `json:"ref,omitempty"`
	Filter  string `json:"filter,omitempty"`
	ID      string `json:"id,omitempty"`      // created or resolved item id
	Removed int    `json:"removed,omitempty"` // clear_completed only
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// Snapshot is the store state after the last step.
type Snapshot struct {
	Filter todo.Filter `json:"filter"`
	Items  []todo.Item `json:"items"`
	Stats  todo.Stats  `json:"stats"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains the executed steps in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the store state after the last step.
	Final Snapshot `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an executed step.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
