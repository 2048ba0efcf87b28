// Package blueprint implements deterministic (de)serialization of agent
// constellations (§4.10): a discriminated Spec sum type (agent, router,
// supervisor, parallel, network, hierarchical), registry indirection for
// tools and guardrails that have no serializable identity of their own,
// and env-var resolution for credentials.
//
// Go has no reflective FQCN instantiation, so "tools/guardrails serialize
// by class name, reconstructed by reflection" (§4.10, §9 design note) is
// adapted to the mechanism Go actually offers: a process-scoped, name-keyed
// factory registry (ToolRegistry here; guardrail.Registry already provides
// the equivalent for guardrails). A tool or guardrail with no entry in the
// registry at restore time is the Go analogue of "lacking a no-arg
// constructor": restoring a blueprint that references a missing ID fails.
// Blueprints are written from a Spec, never from a live agent's tools, so
// there is no creation step at which such an entry is silently omitted.
//
// Symmetrically, "serialize a live Agent" is adapted to "serialize the Spec
// used to build it" rather than reflectively introspecting an
// already-constructed *agentcore.Agent: agentcore.Agent is deliberately
// immutable with unexported fields (§5), and §9's design notes flag
// reflection-based introspection as exactly the kind of pattern this port
// re-architects rather than carries over. A caller that wants both a live
// agent and its blueprint builds one Spec, calls Build on it (live) and
// json.Marshal(NewNode(spec)) (serialized); Spec + Build replaces the teacher's implicit
// "introspect the object graph" step with an explicit one.
package blueprint

import "fmt"

// Kind discriminates the Spec sum type (§4.10).
type Kind string

const (
	KindAgent        Kind = "agent"
	KindRouter       Kind = "router"
	KindSupervisor   Kind = "supervisor"
	KindParallel     Kind = "parallel"
	KindNetwork      Kind = "network"
	KindHierarchical Kind = "hierarchical"
)

// ConfigurationError reports a blueprint restoration failure: a missing
// environment variable, an unknown tool/guardrail registry ID, or a
// malformed document (§4.5, §4.10, §7 KindConfiguration).
type ConfigurationError struct {
	Path   string // dotted path to the offending node, for diagnostics
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("blueprint: %s: %s", e.Path, e.Reason)
}

// Spec is the sum type every blueprint node satisfies, mirroring the wire
// Blueprint's "type" discriminator (§4.10, §6: "every node has type and
// name where applicable").
type Spec interface {
	Kind() Kind
}
