package core

import "fmt"

// Operation selects which branch of a node runs.
type Operation string

const (
	OperationQuery  Operation = "query"
	OperationInsert Operation = "insert"
)

// OperationFromString converts a raw parameter value to an Operation.
func OperationFromString(s string) (Operation, error) {
	switch o := Operation(s); o {
	case OperationQuery, OperationInsert:
		return o, nil
	}

	return "", fmt.Errorf("unknown operation: %q", s)
}

func (o Operation) String() string {
	return string(o)
}
