package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/todos/internal/store"
	"github.com/roach88/todos/internal/todo"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// AssertionContext gives assertions access to the store and its slot.
type AssertionContext struct {
	Todos *todo.Store
	Slot  *store.Store
	Ctx   context.Context
}

// EvaluateAssertions evaluates all assertions.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		if actx == nil || actx.Todos == nil {
			err = fmt.Errorf("assertion[%d]: no store to assert against", i)
		} else {
			switch assertion.Type {
			case AssertVisibleOrder:
				err = assertVisibleOrder(actx.Todos, assertion)
			case AssertPersisted:
				err = assertPersisted(actx, assertion)
			case AssertStats:
				err = assertStats(actx.Todos, assertion)
			case AssertFilter:
				err = assertFilter(actx.Todos, assertion)
			default:
				err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
			}
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

// assertVisibleOrder compares item texts under a filter with the expected list.
// An empty filter means the store's active filter.
func assertVisibleOrder(s *todo.Store, a Assertion) error {
	var items []todo.Item
	label := string(s.Filter())
	if a.Filter == "" {
		items = s.VisibleItems()
	} else {
		f, err := todo.ParseFilter(a.Filter)
		if err != nil {
			return err
		}
		items = s.ItemsFor(f)
		label = string(f)
	}

	actual := itemTexts(items)
	if !equalStrings(actual, a.Texts) {
		return &AssertionError{
			Type:     AssertVisibleOrder + "(" + label + ")",
			Expected: fmt.Sprintf("%q", a.Texts),
			Actual:   fmt.Sprintf("%q", actual),
		}
	}
	return nil
}

// assertPersisted decodes the slot and compares its item texts.
func assertPersisted(actx *AssertionContext, a Assertion) error {
	if actx.Slot == nil {
		return fmt.Errorf("%s requires a slot", AssertPersisted)
	}

	ctx := actx.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := actx.Slot.Get(ctx, todo.DefaultKey)
	if err != nil {
		return &AssertionError{
			Type:     AssertPersisted,
			Expected: fmt.Sprintf("%q", a.Texts),
			Actual:   err.Error(),
		}
	}

	items, err := todo.Decode(data)
	if err != nil {
		return &AssertionError{
			Type:     AssertPersisted,
			Expected: fmt.Sprintf("%q", a.Texts),
			Actual:   "undecodable payload: " + err.Error(),
		}
	}

	actual := itemTexts(items)
	if !equalStrings(actual, a.Texts) {
		return &AssertionError{
			Type:     AssertPersisted,
			Expected: fmt.Sprintf("%q", a.Texts),
			Actual:   fmt.Sprintf("%q", actual),
		}
	}
	return nil
}

func assertStats(s *todo.Store, a Assertion) error {
	actual := s.Stats()
	if actual != *a.Stats {
		return &AssertionError{
			Type:     AssertStats,
			Expected: formatStats(*a.Stats),
			Actual:   formatStats(actual),
		}
	}
	return nil
}

func assertFilter(s *todo.Store, a Assertion) error {
	if actual := s.Filter(); string(actual) != a.Filter {
		return &AssertionError{
			Type:     AssertFilter,
			Expected: a.Filter,
			Actual:   string(actual),
		}
	}
	return nil
}

func formatStats(s todo.Stats) string {
	return fmt.Sprintf("total=%d pending=%d done=%d", s.Total, s.Pending, s.Done)
}

func itemTexts(items []todo.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Text
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
