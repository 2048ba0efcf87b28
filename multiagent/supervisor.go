package multiagent

import (
	"fmt"

	"github.com/wrenlabs/agentresponses/agentcore"
	"github.com/wrenlabs/agentresponses/tools"
)

// Worker names a sub-agent and the skill description exposed to the
// orchestrator that will call it as a tool (§4.8 Supervisor: "each worker
// becomes a tool named after the worker with a description of its
// skills").
type Worker struct {
	Name        string
	Description string
	Agent       *agentcore.Agent
}

// NewSupervisor builds an orchestrator Agent whose tool surface is exactly
// one sub-agent-as-tool wrapper per worker, using the normal agentic loop
// for everything else (§4.8). orchestratorOpts configures the orchestrator
// itself (model, responder, system prompt, ...); WithName(name) and
// WithToolLookup are applied by this function after orchestratorOpts, so
// they override any name or tool lookup set there.
func NewSupervisor(name string, orchestratorOpts []agentcore.Option, workers []Worker) (*agentcore.Agent, error) {
	store := tools.NewStore()
	names := make([]string, 0, len(workers))
	for _, w := range workers {
		tool, err := WrapAsTool(w.Name, w.Description, w.Agent, DefaultSharePolicy())
		if err != nil {
			return nil, fmt.Errorf("multiagent: supervisor %q: worker %q: %w", name, w.Name, err)
		}
		store.Register(tool)
		names = append(names, w.Name)
	}

	opts := append(append([]agentcore.Option{}, orchestratorOpts...), agentcore.WithName(name))
	opts = append(opts, agentcore.WithToolLookup(store, store.Specs(names...)))
	return agentcore.New(opts...), nil
}
