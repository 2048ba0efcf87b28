// Package tools implements named, JSON-schema-described functions the
// agentic loop can invoke: registry lookup, argument validation against
// each tool's declared schema, and result serialization (§4.4). Adapted
// from the teacher's root tool.go (Tool/BaseTool/FunctionTool) and its
// reflection-based schema generation, replaced here with explicit
// caller-supplied schemas validated through schema.Compile rather than
// inferred from a Go function signature.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"

	"github.com/wrenlabs/agentresponses/agentcore"
	"github.com/wrenlabs/agentresponses/responses"
	"github.com/wrenlabs/agentresponses/schema"
)

// namePattern constrains tool names to what the Responses wire format
// accepts as a function name (§4.4).
var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// InvokeFunc is the caller-supplied body of a FunctionTool. It receives the
// raw (already schema-validated) arguments and returns any serializable
// value, or an error to be surfaced as an IsError output item.
type InvokeFunc func(ctx context.Context, args json.RawMessage) (any, error)

// FunctionTool is a single named, schema-described function exposed to the
// agentic loop.
type FunctionTool struct {
	name                 string
	description          string
	parametersSchema     map[string]any
	validator            *schema.Validator
	requiresConfirmation bool
	invoke               InvokeFunc
}

// New builds a FunctionTool, compiling parametersSchema eagerly so a
// malformed schema fails at registration time rather than on first call.
func New(name, description string, parametersSchema map[string]any, invoke InvokeFunc) (*FunctionTool, error) {
	if !namePattern.MatchString(name) {
		return nil, fmt.Errorf("tools: invalid tool name %q", name)
	}
	if invoke == nil {
		return nil, fmt.Errorf("tools: %q: invoke function is required", name)
	}
	v, err := schema.Compile(parametersSchema)
	if err != nil {
		return nil, fmt.Errorf("tools: %q: invalid parameters schema: %w", name, err)
	}
	return &FunctionTool{
		name:             name,
		description:      description,
		parametersSchema: parametersSchema,
		validator:        v,
		invoke:           invoke,
	}, nil
}

// RequireConfirmation marks the tool as requiring human approval before
// execution (§4.6 step 3.5.3). Returns the receiver for chaining at
// registration time.
func (t *FunctionTool) RequireConfirmation() *FunctionTool {
	t.requiresConfirmation = true
	return t
}

func (t *FunctionTool) Name() string              { return t.name }
func (t *FunctionTool) Description() string       { return t.description }
func (t *FunctionTool) RequiresConfirmation() bool { return t.requiresConfirmation }

// Spec renders the tool's wire-format declaration for inclusion in a
// Request.Tools list.
func (t *FunctionTool) Spec() responses.ToolSpec {
	raw, err := json.Marshal(t.parametersSchema)
	if err != nil {
		// parametersSchema already round-tripped through schema.Compile in
		// New, so a marshal failure here would mean it was mutated after
		// construction into something JSON cannot represent.
		panic(fmt.Sprintf("tools: %q: parameters schema no longer marshals: %v", t.name, err))
	}
	return responses.ToolSpec{
		Type:        "function",
		Name:        t.name,
		Description: t.description,
		Parameters:  raw,
		Strict:      true,
	}
}

// Invoke validates argumentsRaw against the tool's schema, runs the
// function, and serializes the result. It never returns a non-nil Go
// error: every failure mode (invalid arguments, a returned error, an
// unserializable result) becomes an IsError output item instead, since the
// loop always needs exactly one FunctionToolCallOutputItem per call (§3,
// §4.4).
func (t *FunctionTool) Invoke(ctx context.Context, argumentsRaw json.RawMessage) (responses.FunctionToolCallOutputItem, error) {
	var decoded map[string]any
	if err := t.validator.DecodeStrict(argumentsRaw, &decoded); err != nil {
		return responses.FunctionToolCallOutputItem{
			Output:  fmt.Sprintf("invalid arguments for tool %q: %v", t.name, err),
			IsError: true,
		}, nil
	}

	result, err := t.invoke(ctx, argumentsRaw)
	if err != nil {
		return responses.FunctionToolCallOutputItem{Output: err.Error(), IsError: true}, nil
	}

	out, err := serialize(result)
	if err != nil {
		return responses.FunctionToolCallOutputItem{
			Output:  fmt.Sprintf("tool %q produced an unserializable result: %v", t.name, err),
			IsError: true,
		}, nil
	}
	return responses.FunctionToolCallOutputItem{Output: out}, nil
}

// serialize passes a string result through unchanged and JSON-encodes
// everything else (§4.4's "string passthrough, else JSON-encode" rule).
func serialize(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FunctionToolStore is a concurrency-safe registry of FunctionTools, keyed
// by name. Reads (Lookup/Specs/All) take a read lock; only Register takes
// the write lock, matching the teacher's ToolRegistry concurrency model.
type FunctionToolStore struct {
	mu    sync.RWMutex
	tools map[string]*FunctionTool
}

// NewStore builds an empty FunctionToolStore.
func NewStore() *FunctionToolStore {
	return &FunctionToolStore{tools: make(map[string]*FunctionTool)}
}

// Register adds or replaces a tool under its own name.
func (s *FunctionToolStore) Register(t *FunctionTool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools[t.name] = t
}

// Lookup implements agentcore.ToolLookup, so a *FunctionToolStore can be
// passed directly to agentcore.WithToolLookup.
func (s *FunctionToolStore) Lookup(name string) (agentcore.ToolHandle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tools[name]
	if !ok {
		return nil, false
	}
	return t, true
}

// Get returns the concrete *FunctionTool registered under name, for
// callers (e.g. blueprint restoration) that need the tool itself rather
// than the narrower ToolHandle view.
func (s *FunctionToolStore) Get(name string) (*FunctionTool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tools[name]
	return t, ok
}

// Specs renders wire-format ToolSpecs for the named tools, in the order
// given, so callers control the deterministic ordering sent to the model.
func (s *FunctionToolStore) Specs(names ...string) []responses.ToolSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	specs := make([]responses.ToolSpec, 0, len(names))
	for _, name := range names {
		if t, ok := s.tools[name]; ok {
			specs = append(specs, t.Spec())
		}
	}
	return specs
}

// All returns every registered tool, in no particular order.
func (s *FunctionToolStore) All() []*FunctionTool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*FunctionTool, 0, len(s.tools))
	for _, t := range s.tools {
		out = append(out, t)
	}
	return out
}
