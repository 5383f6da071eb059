package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// ScenarioSnapshot captures a scenario execution for golden comparison.
type ScenarioSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Trace        []TraceEvent `json:"trace"`
	Final        Snapshot     `json:"final"`
}

// toCanonicalMap converts the snapshot to the value shapes marshalCanonical accepts.
func (s *ScenarioSnapshot) toCanonicalMap() map[string]any {
	trace := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		m := map[string]any{
			"seq": event.Seq,
			"op":  event.Op,
			"ok":  event.OK,
		}
		if event.Text != "" {
			m["text"] = event.Text
		}
		if event.Ref != "" {
			m["ref"] = event.Ref
		}
		if event.Filter != "" {
			m["filter"] = event.Filter
		}
		if event.ID != "" {
			m["id"] = event.ID
		}
		if event.Op == OpClearCompleted {
			m["removed"] = event.Removed
		}
		if event.Error != "" {
			m["error"] = event.Error
		}
		trace[i] = m
	}

	items := make([]any, len(s.Final.Items))
	for i, item := range s.Final.Items {
		items[i] = map[string]any{
			"id":        item.ID,
			"text":      item.Text,
			"done":      item.Done,
			"createdAt": item.CreatedAt,
		}
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         trace,
		"final": map[string]any{
			"filter": string(s.Final.Filter),
			"items":  items,
			"stats": map[string]any{
				"total":   s.Final.Stats.Total,
				"pending": s.Final.Stats.Pending,
				"done":    s.Final.Stats.Done,
			},
		},
	}
}

// MarshalSnapshot renders a scenario result as canonical JSON.
func MarshalSnapshot(name string, result *Result) ([]byte, error) {
	snapshot := ScenarioSnapshot{
		ScenarioName: name,
		Trace:        result.Trace,
		Final:        result.Final,
	}
	return marshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
