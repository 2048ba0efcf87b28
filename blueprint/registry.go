package blueprint

import "sync"

// ToolFactory builds a concrete tool for a registry entry. It takes no
// arguments because a FunctionTool's InvokeFunc is a Go closure with no
// serializable identity (§4.10, §9): the blueprint carries only the tool's
// name, and restoration recovers the actual implementation from whichever
// process-local factory was registered under that name, the same way
// guardrail.Registry recovers guardrail implementations.
type ToolFactory func() (any, error)

// ToolRegistry is a process-scoped, concurrency-safe map from a tool name
// to the factory that builds it, mirroring guardrail.Registry's shape and
// concurrency model. Kept generic over any rather than *tools.FunctionTool
// so callers that bundle additional per-tool metadata (e.g. confirmation
// requirements already baked into the factory) aren't forced through a
// narrower type; AgentBlueprint.Build type-asserts the result it expects.
type ToolRegistry struct {
	mu        sync.RWMutex
	factories map[string]ToolFactory
}

// NewToolRegistry builds an empty ToolRegistry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{factories: map[string]ToolFactory{}}
}

// Register adds or replaces the factory for name.
func (r *ToolRegistry) Register(name string, factory ToolFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Build invokes the named factory. A missing entry is the Go analogue of
// "tool class lacks a no-arg constructor" (§4.10) and is reported as a
// ConfigurationError at the given diagnostic path.
func (r *ToolRegistry) Build(path, name string) (any, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &ConfigurationError{Path: path, Reason: "no tool registered under name " + name}
	}
	return factory()
}
