package blueprint

import (
	"github.com/wrenlabs/agentresponses/multiagent"
)

// RoutedAgentBlueprint pairs a candidate agent with the description shown
// to the Router's classification call (§4.7), mirroring multiagent.RoutedAgent.
type RoutedAgentBlueprint struct {
	Description string         `json:"description"`
	Agent       AgentBlueprint `json:"agent"`
}

// RouterBlueprint serializes a multiagent.Router (§4.7, §4.10).
type RouterBlueprint struct {
	Responder *ResponderBlueprint    `json:"responder,omitempty"`
	Model     string                 `json:"model"`
	Agents    []RoutedAgentBlueprint `json:"agents"`
	Fallback  *AgentBlueprint        `json:"fallback,omitempty"`
}

// Kind implements Spec.
func (b RouterBlueprint) Kind() Kind { return KindRouter }

// Build reconstructs a live *multiagent.Router, building every candidate and
// the fallback agent first.
func (b RouterBlueprint) Build(path string, env BuildEnv) (*multiagent.Router, error) {
	responder := env.Responder
	if b.Responder != nil {
		built, err := b.Responder.Build(path + ".responder")
		if err != nil {
			return nil, err
		}
		responder = built
	}
	if responder == nil {
		return nil, &ConfigurationError{Path: path, Reason: "no responder available"}
	}

	agents := make([]multiagent.RoutedAgent, 0, len(b.Agents))
	for _, ra := range b.Agents {
		agent, err := ra.Agent.Build(path+".agents", env)
		if err != nil {
			return nil, err
		}
		agents = append(agents, multiagent.RoutedAgent{Agent: agent, Description: ra.Description})
	}

	if b.Fallback != nil {
		built, err := b.Fallback.Build(path+".fallback", env)
		if err != nil {
			return nil, err
		}
		return multiagent.NewRouter(responder, b.Model, agents, built), nil
	}
	return multiagent.NewRouter(responder, b.Model, agents, nil), nil
}
