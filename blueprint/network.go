package blueprint

import (
	"github.com/wrenlabs/agentresponses/multiagent"
)

// NetworkBlueprint serializes a multiagent.AgentNetwork (§4.8, §4.10).
type NetworkBlueprint struct {
	Peers       []AgentBlueprint `json:"peers"`
	MaxRounds   int              `json:"max_rounds"`
	Synthesizer *AgentBlueprint  `json:"synthesizer,omitempty"`
}

// Kind implements Spec.
func (b NetworkBlueprint) Kind() Kind { return KindNetwork }

// Build reconstructs a live *multiagent.AgentNetwork.
func (b NetworkBlueprint) Build(path string, env BuildEnv) (*multiagent.AgentNetwork, error) {
	peers, err := buildAgents(path+".peers", env, b.Peers)
	if err != nil {
		return nil, err
	}

	network := multiagent.NewAgentNetwork(b.MaxRounds, peers...)
	if b.Synthesizer != nil {
		agent, err := b.Synthesizer.Build(path+".synthesizer", env)
		if err != nil {
			return nil, err
		}
		network.Synthesizer = multiagent.AgentSynthesizer(agent)
	}
	return network, nil
}
