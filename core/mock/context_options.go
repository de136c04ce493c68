package mock

import (
	"fmt"

	"github.com/joewashear007/n8n-nodes-clickhouse/core"
)

type contextConfig struct {
	parameters     map[string]any
	credentials    map[string]*core.Credentials
	credentialsErr error
	inputItems     []core.Item
}

// ContextOption is a function that configures the mock execute context.
type ContextOption func(*contextConfig)

// WithParameter registers a parameter value under the given name.
// Panics when the name is already registered.
func WithParameter(name string, value any) ContextOption {
	return func(c *contextConfig) {
		_, ok := c.parameters[name]
		if ok {
			panic(fmt.Sprintf("parameter with name %q already registered", name))
		}

		c.parameters[name] = value
	}
}

// WithCredentials registers credentials under the given kind.
// Panics when the kind is already registered.
func WithCredentials(kind string, credentials *core.Credentials) ContextOption {
	return func(c *contextConfig) {
		_, ok := c.credentials[kind]
		if ok {
			panic(fmt.Sprintf("credentials with kind %q already registered", kind))
		}

		c.credentials[kind] = credentials
	}
}

// WithCredentialsError makes every credential lookup fail with err.
func WithCredentialsError(err error) ContextOption {
	return func(c *contextConfig) {
		c.credentialsErr = err
	}
}

// WithInputItems sets the items flowing into the node.
func WithInputItems(items ...core.Item) ContextOption {
	return func(c *contextConfig) {
		c.inputItems = append(c.inputItems, items...)
	}
}

// WithInputPayloads wraps raw payloads and sets them as input items.
func WithInputPayloads(payloads ...map[string]any) ContextOption {
	return func(c *contextConfig) {
		c.inputItems = append(c.inputItems, core.WrapPayloads(payloads)...)
	}
}
