package multiagent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/wrenlabs/agentresponses/agentcore"
)

// ParallelAgents fans the same input out to every member concurrently on
// independent context copies (§4.8). Grounded in the teacher's
// RunParallel (multi/modes.go), which used a bare sync.WaitGroup plus a
// parallel error slice; Run is rebuilt on errgroup here, while RunFirst
// cancels the losers (§4.8, §9 Open Question 3) through its own
// context.WithCancel rather than through the group.
type ParallelAgents struct {
	Members []*agentcore.Agent
}

// NewParallelAgents builds a ParallelAgents over the given members, in the
// registration order Run/RunFirst/RunAndSynthesize preserve in their
// results.
func NewParallelAgents(members ...*agentcore.Agent) *ParallelAgents {
	return &ParallelAgents{Members: members}
}

// Run invokes every member concurrently on the original input, each on its
// own AgentContext copy, and returns results in registration order
// regardless of completion order (§5 ordering guarantee).
func (p *ParallelAgents) Run(ctx context.Context, input string) ([]agentcore.AgentResult, error) {
	results := make([]agentcore.AgentResult, len(p.Members))
	g, gctx := errgroup.WithContext(ctx)
	for i, member := range p.Members {
		i, member := i, member
		g.Go(func() error {
			results[i] = member.Interact(gctx, agentcore.NewAgentContext(""), input)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunFirst returns the earliest completion and cancels the remaining
// members' contexts once it arrives. A member that does not observe that
// cancellation still runs to completion, and its result is discarded.
func (p *ParallelAgents) RunFirst(ctx context.Context, input string) (agentcore.AgentResult, error) {
	type outcome struct {
		idx    int
		result agentcore.AgentResult
	}
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan outcome, len(p.Members))
	for i, member := range p.Members {
		i, member := i, member
		go func() {
			r := member.Interact(cctx, agentcore.NewAgentContext(""), input)
			select {
			case results <- outcome{idx: i, result: r}:
			case <-cctx.Done():
			}
		}()
	}

	select {
	case first := <-results:
		cancel()
		return first.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Synthesizer produces a final digest from a set of member outputs.
type Synthesizer func(ctx context.Context, outputs []string) (agentcore.AgentResult, error)

// AgentSynthesizer adapts an Agent into a Synthesizer: the member outputs
// are concatenated into one input and passed to the synthesizer agent's
// Interact (§4.8 "runAndSynthesize ... concatenates member outputs into a
// single input for a final agent").
func AgentSynthesizer(agent *agentcore.Agent) Synthesizer {
	return func(ctx context.Context, outputs []string) (agentcore.AgentResult, error) {
		return agent.Interact(ctx, agentcore.NewAgentContext(""), synthesizeInput(outputs)), nil
	}
}

// RunAndSynthesize runs every member (as Run does) then feeds their
// successful outputs to synthesizer. A member that errored, paused, or
// handed off contributes no text to the synthesis input; if every member
// failed that way, RunAndSynthesize returns the first member's raw result
// without invoking the synthesizer.
func (p *ParallelAgents) RunAndSynthesize(ctx context.Context, input string, synthesizer Synthesizer) (agentcore.AgentResult, error) {
	results, err := p.Run(ctx, input)
	if err != nil {
		return nil, err
	}

	var outputs []string
	for _, r := range results {
		if success, ok := r.(agentcore.Success); ok {
			outputs = append(outputs, success.Output)
		}
	}
	if len(outputs) == 0 {
		return results[0], nil
	}
	return synthesizer(ctx, outputs)
}
