package core

import "context"

// Node is a single configurable step a host platform can place in a
// workflow. Implementations are stateless between invocations: every
// Execute call opens and closes its own resources.
type Node interface {
	// Definition returns the schema the host renders and validates
	// parameters against.
	Definition() *NodeDefinition
	// Execute runs the configured operation once and returns the output
	// items.
	Execute(ctx context.Context, ec ExecuteContext) ([]Item, error)
	// TestCredentials probes candidate credentials end to end.
	TestCredentials(ctx context.Context, credentials *Credentials) *CredentialTestResult
}
