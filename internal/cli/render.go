package cli

import (
	"fmt"
	"strings"

	"github.com/roach88/todos/internal/todo"
)

// emptyListText is shown when the visible list has no items.
const emptyListText = "Nothing here yet. Add your first todo!"

// AddResult is the output of the add command.
type AddResult struct {
	Added bool       `json:"added"`
	Item  *todo.Item `json:"item,omitempty"`
}

func (r AddResult) String() string {
	if !r.Added {
		return "Nothing added: text is empty."
	}
	return fmt.Sprintf("Added %s: %s", r.Item.ID, r.Item.Text)
}

// ToggleResult is the output of the toggle command.
type ToggleResult struct {
	Item todo.Item `json:"item"`
}

func (r ToggleResult) String() string {
	state := "active"
	if r.Item.Done {
		state = "done"
	}
	return fmt.Sprintf("Marked %s as %s: %s", r.Item.ID, state, r.Item.Text)
}

// RemoveResult is the output of the rm command.
type RemoveResult struct {
	Item todo.Item `json:"item"`
}

func (r RemoveResult) String() string {
	return fmt.Sprintf("Removed %s: %s", r.Item.ID, r.Item.Text)
}

// ClearResult is the output of the clear command.
type ClearResult struct {
	Removed int `json:"removed"`
}

func (r ClearResult) String() string {
	if r.Removed == 1 {
		return "Cleared 1 completed todo."
	}
	return fmt.Sprintf("Cleared %d completed todos.", r.Removed)
}

// ListResult is the output of the list command.
type ListResult struct {
	Filter todo.Filter `json:"filter"`
	Items  []todo.Item `json:"items"`
	Stats  todo.Stats  `json:"stats"`
}

func (r ListResult) String() string {
	if len(r.Items) == 0 {
		return emptyListText
	}
	var b strings.Builder
	for _, item := range r.Items {
		b.WriteString(formatItem(item))
		b.WriteByte('\n')
	}
	b.WriteString(StatsResult{Stats: r.Stats}.String())
	return b.String()
}

// StatsResult is the output of the stats command.
type StatsResult struct {
	todo.Stats
}

func (r StatsResult) String() string {
	return fmt.Sprintf("Total: %d  Pending: %d  Done: %d", r.Total, r.Pending, r.Done)
}

// formatItem renders one item as "[x] <id>  <text>".
func formatItem(item todo.Item) string {
	mark := " "
	if item.Done {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s  %s", mark, item.ID, item.Text)
}
