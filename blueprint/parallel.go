package blueprint

import (
	"github.com/wrenlabs/agentresponses/multiagent"
)

// ParallelBlueprint serializes a multiagent.ParallelAgents (§4.8, §4.10).
// Synthesizer, if set, names an AgentBlueprint wrapped with
// multiagent.AgentSynthesizer; omitted, callers get the raw member results.
type ParallelBlueprint struct {
	Members     []AgentBlueprint `json:"members"`
	Synthesizer *AgentBlueprint  `json:"synthesizer,omitempty"`
}

// Kind implements Spec.
func (b ParallelBlueprint) Kind() Kind { return KindParallel }

// Build reconstructs a live *multiagent.ParallelAgents. The synthesizer, if
// any, is returned separately since multiagent.ParallelAgents itself carries
// no synthesizer field — callers pass it to RunAndSynthesize.
func (b ParallelBlueprint) Build(path string, env BuildEnv) (*multiagent.ParallelAgents, multiagent.Synthesizer, error) {
	memberAgents, err := buildAgents(path+".members", env, b.Members)
	if err != nil {
		return nil, nil, err
	}

	var synth multiagent.Synthesizer
	if b.Synthesizer != nil {
		agent, err := b.Synthesizer.Build(path+".synthesizer", env)
		if err != nil {
			return nil, nil, err
		}
		synth = multiagent.AgentSynthesizer(agent)
	}

	return multiagent.NewParallelAgents(memberAgents...), synth, nil
}
