package mock

import (
	"fmt"

	"github.com/joewashear007/n8n-nodes-clickhouse/core"
)

var _ core.ExecuteContext = (*Context)(nil)

// Context is a configurable mock of the host execute context.
type Context struct {
	config *contextConfig
}

// NewContext creates a new mock execute context based on provided options.
func NewContext(opts ...ContextOption) *Context {
	config := &contextConfig{
		parameters:  make(map[string]any),
		credentials: make(map[string]*core.Credentials),
	}

	for _, opt := range opts {
		opt(config)
	}

	return &Context{
		config: config,
	}
}

func (c *Context) Parameter(name string) (any, bool) {
	val, ok := c.config.parameters[name]
	return val, ok
}

func (c *Context) Credentials(kind string) (*core.Credentials, error) {
	if c.config.credentialsErr != nil {
		return nil, c.config.credentialsErr
	}

	credentials, ok := c.config.credentials[kind]
	if !ok {
		return nil, fmt.Errorf("no credentials registered for kind %q", kind)
	}

	return credentials, nil
}

func (c *Context) InputItems() []core.Item {
	return c.config.inputItems
}

func (c *Context) WrapItems(payloads []map[string]any) []core.Item {
	return core.WrapPayloads(payloads)
}
