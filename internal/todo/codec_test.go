package todo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_WireFormat(t *testing.T) {
	data, err := Encode([]Item{
		{ID: "b", Text: "Call mom", Done: false, CreatedAt: 1700000000002},
		{ID: "a", Text: "Buy milk", Done: true, CreatedAt: 1700000000001},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`[{"id":"b","text":"Call mom","done":false,"createdAt":1700000000002},`+
			`{"id":"a","text":"Buy milk","done":true,"createdAt":1700000000001}]`,
		string(data))
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecode_RoundTrip(t *testing.T) {
	items := []Item{
		{ID: "c", Text: "third", Done: false, CreatedAt: 3},
		{ID: "b", Text: "second", Done: true, CreatedAt: 2},
		{ID: "a", Text: "first", Done: false, CreatedAt: 1},
	}

	data, err := Encode(items)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, items, decoded)
}

func TestDecode_EmptyArray(t *testing.T) {
	items, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDecode_ExtraFieldsTolerated(t *testing.T) {
	items, err := Decode([]byte(`[{"id":"a","text":"x","done":false,"createdAt":1,"priority":3}]`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, Item{ID: "a", Text: "x", CreatedAt: 1}, items[0])
}

func TestDecode_RepairsInvariants(t *testing.T) {
	items, err := Decode([]byte(`[
		{"id":"a","text":"  padded  ","done":false,"createdAt":3},
		{"id":"b","text":"   ","done":true,"createdAt":2},
		{"id":"a","text":"duplicate","done":true,"createdAt":1}
	]`))
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "padded", items[0].Text)
}

func TestDecode_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not an array", `{"id":"a"}`},
		{"done not bool", `[{"id":"a","text":"x","done":"yes","createdAt":1}]`},
		{"empty id", `[{"id":"","text":"x","done":false,"createdAt":1}]`},
		{"negative createdAt", `[{"id":"a","text":"x","done":false,"createdAt":-1}]`},
		{"missing text", `[{"id":"a","done":false,"createdAt":1}]`},
		{"element not object", `["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			require.Error(t, err)

			var schemaErr *SchemaError
			assert.True(t, errors.As(err, &schemaErr), "expected SchemaError, got %T: %v", err, err)
		})
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`[{"id":`))
	assert.Error(t, err)
}

func TestSchemaError_Format(t *testing.T) {
	err := &SchemaError{Path: "0.done", Message: "conflicting values"}
	assert.Equal(t, "0.done: conflicting values", err.Error())

	err = &SchemaError{Message: "bad"}
	assert.Equal(t, "bad", err.Error())
}
