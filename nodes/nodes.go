package nodes

import (
	"errors"
	"sort"

	"github.com/joewashear007/n8n-nodes-clickhouse/core"
)

var (
	errNoValidTypeAliases   = errors.New("no valid type aliases provided")
	ErrUnsupportedTypeAlias = errors.New("no node registered for provided type alias")
)

// registeredNodes holds implemented nodes - specific nodes register
// themselves in their init functions.
var registeredNodes = make(map[string]core.Node)

// register registers a new node under one or more type aliases
func register(node core.Node, aliases ...string) error {
	if len(aliases) < 1 {
		return errNoValidTypeAliases
	}

	invalidCount := 0
	for _, alias := range aliases {
		if alias == "" {
			invalidCount++
			continue
		}
		registeredNodes[alias] = node
	}

	if invalidCount == len(aliases) {
		return errNoValidTypeAliases
	}

	return nil
}

// Register adds a custom node to the registry under the given type aliases.
func Register(node core.Node, aliases ...string) error {
	return register(node, aliases...)
}

// Get returns the node registered under the given type alias.
func Get(typ string) (core.Node, error) {
	node, ok := registeredNodes[typ]
	if !ok {
		return nil, ErrUnsupportedTypeAlias
	}

	return node, nil
}

// Definitions returns the definition of every registered node, deduplicated
// across aliases and sorted by name.
func Definitions() []*core.NodeDefinition {
	seen := make(map[string]bool)

	var definitions []*core.NodeDefinition
	for _, node := range registeredNodes {
		definition := node.Definition()
		if seen[definition.Name] {
			continue
		}
		seen[definition.Name] = true
		definitions = append(definitions, definition)
	}

	sort.Slice(definitions, func(i, j int) bool {
		return definitions[i].Name < definitions[j].Name
	})

	return definitions
}
