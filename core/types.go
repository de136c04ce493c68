package core

import "fmt"

type (
	// Row and Header are attributes of the ResultStream iterator.
	Row    []any
	Header []string

	// ResultStream is an iterator over the rows of an executed query.
	// HasNext advances the underlying cursor, Next scans the current row,
	// so calls must alternate. Err reports the failure that ended the
	// iteration, if any, and must be checked once HasNext returns false.
	// Close releases the cursor and is safe after exhaustion.
	ResultStream interface {
		Header() Header
		Next() (Row, error)
		HasNext() bool
		Err() error
		Close()
	}
)

// RowPayload maps a row to a JSON object payload keyed by column name.
// Rows wider than the header get positional fallback keys.
func RowPayload(header Header, row Row) map[string]any {
	payload := make(map[string]any, len(row))
	for i, val := range row {
		key := fmt.Sprintf("<unknown-field-%d>", i)
		if i < len(header) {
			key = header[i]
		}
		payload[key] = val
	}

	return payload
}
