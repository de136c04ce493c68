package nodes

import (
	"errors"
	"fmt"
	"strings"
)

// readOnlyPrefixes are the statement kinds read only mode lets through.
var readOnlyPrefixes = []string{"SELECT", "SHOW", "DESCRIBE", "DESC"}

// ErrQueryNotReadOnly rejects statements outside the read only allow list.
var ErrQueryNotReadOnly = errors.New("read only mode allows SELECT, SHOW, DESCRIBE and DESC statements only")

// validateReadOnlyQuery checks the statement prefix after trimming and
// upper casing. It is a plain prefix check: comments, CTEs or stacked
// statements hiding a mutation pass through undetected.
func validateReadOnlyQuery(query string) error {
	normalized := strings.ToUpper(strings.TrimSpace(query))
	for _, prefix := range readOnlyPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return nil
		}
	}

	return ErrQueryNotReadOnly
}

// applyMaxResults appends a textual LIMIT clause unless the bound is not
// positive or the query mentions LIMIT anywhere already. The check is a
// substring match, so a query merely containing the word gets no clause.
func applyMaxResults(query string, maxResults int) string {
	if maxResults <= 0 {
		return query
	}

	if strings.Contains(strings.ToUpper(query), "LIMIT") {
		return query
	}

	return fmt.Sprintf("%s LIMIT %d", query, maxResults)
}
