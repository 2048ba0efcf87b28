package multiagent

import (
	"fmt"

	"github.com/wrenlabs/agentresponses/agentcore"
)

// Department groups a manager (built from ManagerOpts and its Workers) under
// a name and description the executive sees as one callable tool (§4.8
// Hierarchy: "executive -> department manager -> workers").
type Department struct {
	Name        string
	Description string
	ManagerOpts []agentcore.Option
	Workers     []Worker
}

// NewHierarchy builds a three-level executive/manager/worker tree. Each
// department's manager is itself a Supervisor over its workers; the
// executive is a Supervisor whose "workers" are the department managers.
func NewHierarchy(executiveName string, executiveOpts []agentcore.Option, departments []Department) (*agentcore.Agent, error) {
	deptWorkers := make([]Worker, 0, len(departments))
	for _, d := range departments {
		manager, err := NewSupervisor(d.Name, d.ManagerOpts, d.Workers)
		if err != nil {
			return nil, fmt.Errorf("multiagent: hierarchy: department %q: %w", d.Name, err)
		}
		deptWorkers = append(deptWorkers, Worker{Name: d.Name, Description: d.Description, Agent: manager})
	}
	return NewSupervisor(executiveName, executiveOpts, deptWorkers)
}
