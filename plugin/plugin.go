package plugin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joewashear007/n8n-nodes-clickhouse/core"
	"github.com/joewashear007/n8n-nodes-clickhouse/nodes"
)

// InvocationID identifies a single node execution in the logs.
type InvocationID string

// Plugin is the facade a host embeds. It resolves node type aliases and
// wraps invocations with logging, nothing more - nodes keep full control
// over their errors and results.
type Plugin struct {
	log *Logger
}

// New returns an initialized plugin.
func New(logger *Logger) *Plugin {
	if logger == nil {
		logger = NewLogger()
	}

	return &Plugin{
		log: logger,
	}
}

// Definitions returns the definition of every registered node for the host
// to render.
func (p *Plugin) Definitions() []*core.NodeDefinition {
	return nodes.Definitions()
}

// Execute runs one invocation of the node registered under typ. Node errors
// are returned unmodified.
func (p *Plugin) Execute(ctx context.Context, typ string, ec core.ExecuteContext) ([]core.Item, error) {
	node, err := nodes.Get(typ)
	if err != nil {
		return nil, fmt.Errorf("nodes.Get: %w", err)
	}

	id := InvocationID(uuid.New().String())
	start := time.Now()

	items, err := node.Execute(ctx, ec)
	if err != nil {
		p.log.Errorf("invocation %s: node %q failed after %s: %s", id, typ, time.Since(start), err)
		return nil, err
	}

	p.log.Infof("invocation %s: node %q produced %d items in %s", id, typ, len(items), time.Since(start))

	return items, nil
}

// TestCredentials probes candidate credentials against the node registered
// under typ.
func (p *Plugin) TestCredentials(ctx context.Context, typ string, credentials *core.Credentials) (*core.CredentialTestResult, error) {
	node, err := nodes.Get(typ)
	if err != nil {
		return nil, fmt.Errorf("nodes.Get: %w", err)
	}

	result := node.TestCredentials(ctx, credentials)
	p.log.Infof("credential test for node %q: %s", typ, result.Status)

	return result, nil
}
