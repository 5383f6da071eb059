package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/todos/internal/todo"
)

// Scenario is a scripted run against a fresh todo store.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Slot is an optional raw payload placed in the slot before the store
	// is created, to exercise hydration.
	Slot string `yaml:"slot,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions are evaluated after the last step.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is a single store operation.
type Step struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// Text is the raw input for add.
	Text string `yaml:"text,omitempty"`

	// Ref names the target item of toggle or remove by its text.
	Ref string `yaml:"ref,omitempty"`

	// Filter is the argument of set_filter.
	Filter string `yaml:"filter,omitempty"`

	// Expect optionally checks the step outcome.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
type ExpectClause struct {
	// OK is whether the operation changed state (add/toggle/remove) or
	// was accepted (set_filter).
	OK *bool `yaml:"ok,omitempty"`

	// Removed is the expected clear_completed count.
	Removed *int `yaml:"removed,omitempty"`
}

// Assertion validates the final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Filter selects the view for visible_order, or the expected value for filter.
	Filter string `yaml:"filter,omitempty"`

	// Texts is the expected item order for visible_order and persisted.
	Texts []string `yaml:"texts,omitempty"`

	// Stats is the expected counts for stats.
	Stats *todo.Stats `yaml:"stats,omitempty"`
}

// Step operations.
const (
	OpAdd            = "add"
	OpToggle         = "toggle"
	OpRemove         = "remove"
	OpClearCompleted = "clear_completed"
	OpSetFilter      = "set_filter"
	OpReload         = "reload"
)

// Assertion type constants.
const (
	AssertVisibleOrder = "visible_order"
	AssertPersisted    = "persisted"
	AssertStats        = "stats"
	AssertFilter       = "filter"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches "assertion:" vs "assertions:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step *Step) error {
	switch step.Op {
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	case OpAdd:
		// Blank text is allowed: it exercises the no-op path.
	case OpToggle, OpRemove:
		if step.Ref == "" {
			return fmt.Errorf("steps[%d]: ref is required for %s", index, step.Op)
		}
	case OpSetFilter:
		if step.Filter == "" {
			return fmt.Errorf("steps[%d]: filter is required for set_filter", index)
		}
	case OpClearCompleted, OpReload:
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertVisibleOrder:
		if a.Filter != "" {
			if _, err := todo.ParseFilter(a.Filter); err != nil {
				return fmt.Errorf("assertions[%d]: %w", index, err)
			}
		}
	case AssertPersisted:
	case AssertStats:
		if a.Stats == nil {
			return fmt.Errorf("assertions[%d]: stats is required for stats", index)
		}
	case AssertFilter:
		if a.Filter == "" {
			return fmt.Errorf("assertions[%d]: filter is required for filter", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
