package blueprint

import (
	"github.com/wrenlabs/agentresponses/agentcore"
	"github.com/wrenlabs/agentresponses/multiagent"
)

// WorkerBlueprint names a sub-agent and the skill description its wrapping
// tool exposes to the orchestrator (§4.8 Supervisor), mirroring multiagent.Worker.
type WorkerBlueprint struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Agent       AgentBlueprint `json:"agent"`
}

// SupervisorBlueprint serializes a multiagent Supervisor (§4.8, §4.10).
// Orchestrator supplies the orchestrator's model/prompt/tuning parameters.
// Its Tools are still resolved against BuildEnv.Tools (a missing ID fails
// the build), but the resulting tool lookup is overridden by the
// worker-tool lookup NewSupervisor appends last; its Handoffs are built and
// stay in effect. The orchestrator agent is named Name, not
// Orchestrator.Name.
type SupervisorBlueprint struct {
	Name         string            `json:"name"`
	Orchestrator AgentBlueprint    `json:"orchestrator"`
	Workers      []WorkerBlueprint `json:"workers"`
}

// Kind implements Spec.
func (b SupervisorBlueprint) Kind() Kind { return KindSupervisor }

// Build reconstructs a live Supervisor orchestrator agent.
func (b SupervisorBlueprint) Build(path string, env BuildEnv) (*agentcore.Agent, error) {
	orchestratorOpts, err := b.Orchestrator.buildOptions(path+".orchestrator", env)
	if err != nil {
		return nil, err
	}

	workers := make([]multiagent.Worker, 0, len(b.Workers))
	for _, w := range b.Workers {
		agent, err := w.Agent.Build(path+".workers."+w.Name, env)
		if err != nil {
			return nil, err
		}
		workers = append(workers, multiagent.Worker{Name: w.Name, Description: w.Description, Agent: agent})
	}

	return multiagent.NewSupervisor(b.Name, orchestratorOpts, workers)
}
