package blueprint

import (
	"github.com/wrenlabs/agentresponses/agentcore"
	"github.com/wrenlabs/agentresponses/multiagent"
)

// DepartmentBlueprint serializes one multiagent.Department (§4.8 Hierarchy).
type DepartmentBlueprint struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Manager     AgentBlueprint    `json:"manager"`
	Workers     []WorkerBlueprint `json:"workers"`
}

// HierarchicalBlueprint serializes a multiagent Hierarchy: an executive
// Supervisor whose workers are department managers, each itself a Supervisor
// over its own workers (§4.8, §4.10).
type HierarchicalBlueprint struct {
	ExecutiveName string                `json:"executive_name"`
	Executive     AgentBlueprint        `json:"executive"`
	Departments   []DepartmentBlueprint `json:"departments"`
}

// Kind implements Spec.
func (b HierarchicalBlueprint) Kind() Kind { return KindHierarchical }

// Build reconstructs a live three-level executive/manager/worker agent.
func (b HierarchicalBlueprint) Build(path string, env BuildEnv) (*agentcore.Agent, error) {
	executiveOpts, err := b.Executive.buildOptions(path+".executive", env)
	if err != nil {
		return nil, err
	}

	departments := make([]multiagent.Department, 0, len(b.Departments))
	for _, d := range b.Departments {
		managerOpts, err := d.Manager.buildOptions(path+".departments."+d.Name+".manager", env)
		if err != nil {
			return nil, err
		}
		workers := make([]multiagent.Worker, 0, len(d.Workers))
		for _, w := range d.Workers {
			agent, err := w.Agent.Build(path+".departments."+d.Name+".workers."+w.Name, env)
			if err != nil {
				return nil, err
			}
			workers = append(workers, multiagent.Worker{Name: w.Name, Description: w.Description, Agent: agent})
		}
		departments = append(departments, multiagent.Department{
			Name:        d.Name,
			Description: d.Description,
			ManagerOpts: managerOpts,
			Workers:     workers,
		})
	}

	return multiagent.NewHierarchy(b.ExecutiveName, executiveOpts, departments)
}
