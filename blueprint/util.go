package blueprint

import "github.com/wrenlabs/agentresponses/agentcore"

// buildAgents builds each AgentBlueprint in order, stopping at the first
// error. Used by the composite blueprints whose live counterpart takes a
// plain []*agentcore.Agent (ParallelAgents, AgentNetwork).
func buildAgents(path string, env BuildEnv, specs []AgentBlueprint) ([]*agentcore.Agent, error) {
	agents := make([]*agentcore.Agent, 0, len(specs))
	for _, spec := range specs {
		agent, err := spec.Build(path, env)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, nil
}
