package todo

import (
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cuejson "cuelang.org/go/encoding/json"
)

// itemSchema describes a persisted item sequence. Unknown fields are
// tolerated so older or newer writers do not wipe the list.
const itemSchema = `
#Item: {
	id:        string & !=""
	text:      string
	done:      bool
	createdAt: int & >=0
	...
}

#Items: [...#Item]
`

// SchemaError reports a payload that does not match the persisted item schema.
type SchemaError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Path, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Encode serializes items as the JSON array stored in the slot.
// A nil or empty sequence encodes as "[]".
func Encode(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return data, nil
}

// Decode parses and validates a slot payload.
//
// The payload must be a JSON array of item objects matching itemSchema.
// After validation, items are repaired to hold the store invariants:
// text is normalized, blank items are dropped, and only the first item
// with a given id is kept.
func Decode(data []byte) ([]Item, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	return repair(items), nil
}

// validate unifies the payload with #Items and requires a concrete result.
func validate(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(itemSchema, cue.Filename("todo.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile item schema: %w", err)
	}

	expr, err := cuejson.Extract("slot.json", data)
	if err != nil {
		return formatCUEError(err)
	}

	payload := ctx.BuildExpr(expr)
	if err := payload.Err(); err != nil {
		return formatCUEError(err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Items")).Unify(payload)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}

	return nil
}

func repair(items []Item) []Item {
	out := make([]Item, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item.Text = NormalizeText(item.Text)
		if item.Text == "" || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}

// formatCUEError extracts path and position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &SchemaError{Message: err.Error()}
	}

	first := errs[0]
	schemaErr := &SchemaError{
		Path:    strings.Join(first.Path(), "."),
		Message: first.Error(),
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		schemaErr.Pos = positions[0]
	}
	return schemaErr
}
