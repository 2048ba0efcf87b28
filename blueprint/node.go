package blueprint

import (
	"encoding/json"
	"fmt"
)

// Node is a self-describing wrapper around any Spec, giving the recursive
// sum type a flat "type" discriminator in its JSON wire shape (§4.10, §6),
// the same convention responses/marshal.go uses for InputItem/ContentBlock.
// AgentBlueprint's own Handoffs field does not need Node (handoff targets
// are always AgentBlueprint, never another Kind) but every other composite
// blueprint nests heterogeneous children through it.
type Node struct {
	spec Spec
}

// NewNode wraps a concrete blueprint value as a Node.
func NewNode(spec Spec) Node { return Node{spec: spec} }

// Spec returns the wrapped value.
func (n Node) Spec() Spec { return n.spec }

type wireNodeHeader struct {
	Type string `json:"type"`
}

// MarshalJSON renders {"type": "<kind>", ...fields} by re-marshaling the
// wrapped Spec and splicing in its discriminator.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.spec == nil {
		return nil, fmt.Errorf("blueprint: cannot marshal a Node with no Spec")
	}
	body, err := json.Marshal(n.spec)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	typeRaw, err := json.Marshal(n.spec.Kind())
	if err != nil {
		return nil, err
	}
	fields["type"] = typeRaw
	return json.Marshal(fields)
}

// UnmarshalJSON reads the "type" discriminator first, then decodes the full
// document into the matching concrete blueprint type.
func (n *Node) UnmarshalJSON(data []byte) error {
	var header wireNodeHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}
	switch Kind(header.Type) {
	case KindAgent:
		var b AgentBlueprint
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		n.spec = b
	case KindRouter:
		var b RouterBlueprint
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		n.spec = b
	case KindSupervisor:
		var b SupervisorBlueprint
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		n.spec = b
	case KindParallel:
		var b ParallelBlueprint
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		n.spec = b
	case KindNetwork:
		var b NetworkBlueprint
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		n.spec = b
	case KindHierarchical:
		var b HierarchicalBlueprint
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		n.spec = b
	default:
		return fmt.Errorf("blueprint: unknown node type %q", header.Type)
	}
	return nil
}
