package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowPayload(t *testing.T) {
	t.Parallel()

	header := Header{"id", "name"}

	payload := RowPayload(header, Row{int64(7), "seven"})
	assert.Equal(t, map[string]any{"id": int64(7), "name": "seven"}, payload)
}

func TestRowPayloadWiderThanHeader(t *testing.T) {
	t.Parallel()

	payload := RowPayload(Header{"id"}, Row{1, "stray"})

	require.Len(t, payload, 2)
	assert.Equal(t, 1, payload["id"])
	assert.Equal(t, "stray", payload["<unknown-field-1>"])
}

func TestOperationFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw       string
		expected  Operation
		expectErr bool
	}{
		{raw: "query", expected: OperationQuery},
		{raw: "insert", expected: OperationInsert},
		{raw: "Query", expectErr: true},
		{raw: "delete", expectErr: true},
		{raw: "", expectErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			operation, err := OperationFromString(tt.raw)
			if tt.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, operation)
		})
	}
}
