package multiagent

import (
	"context"
	"fmt"

	"github.com/wrenlabs/agentresponses/agentcore"
)

// AgentNetwork implements the peer-network pattern (§4.8): a round-robin
// over Peers for MaxRounds, where each peer within a round sees every prior
// peer's contribution from that same round as "Peer N: ..." lines appended
// to its input text, which it receives as a single user message.
type AgentNetwork struct {
	Peers       []*agentcore.Agent
	MaxRounds   int
	Synthesizer Synthesizer
}

// NewAgentNetwork builds an AgentNetwork over the given peers.
func NewAgentNetwork(maxRounds int, peers ...*agentcore.Agent) *AgentNetwork {
	return &AgentNetwork{Peers: peers, MaxRounds: maxRounds}
}

// Broadcast is identical to ParallelAgents.Run but tagged as a single round
// (§4.8): every peer sees only the original input, run concurrently.
func (n *AgentNetwork) Broadcast(ctx context.Context, input string) ([]agentcore.AgentResult, error) {
	return (&ParallelAgents{Members: n.Peers}).Run(ctx, input)
}

// Run executes MaxRounds of sequential round-robin peer turns. Within a
// round, each peer's input is the original input plus every earlier peer's
// contribution from the same round, rendered as peer-attributed lines in
// that one input text rather than as separate messages. If Synthesizer is
// set, the final round's non-empty contributions are passed to it for a
// final digest; otherwise Run returns only the last peer's result from the
// final round.
func (n *AgentNetwork) Run(ctx context.Context, input string) (agentcore.AgentResult, error) {
	var lastRound []agentcore.AgentResult
	var lastContributions []string

	for round := 0; round < n.MaxRounds; round++ {
		contributions := make([]string, 0, len(n.Peers))
		results := make([]agentcore.AgentResult, 0, len(n.Peers))

		for i, peer := range n.Peers {
			roundInput := input
			if len(contributions) > 0 {
				roundInput += "\n\n" + renderContributions(contributions)
			}
			result := peer.Interact(ctx, agentcore.NewAgentContext(""), roundInput)
			results = append(results, result)
			if success, ok := result.(agentcore.Success); ok {
				contributions = append(contributions, success.Output)
			} else {
				contributions = append(contributions, "")
			}
			_ = i
		}

		lastRound = results
		lastContributions = contributions
	}

	if n.Synthesizer != nil {
		var nonEmpty []string
		for _, c := range lastContributions {
			if c != "" {
				nonEmpty = append(nonEmpty, c)
			}
		}
		return n.Synthesizer(ctx, nonEmpty)
	}
	if len(lastRound) == 0 {
		return nil, fmt.Errorf("multiagent: network has zero rounds")
	}
	return lastRound[len(lastRound)-1], nil
}

func renderContributions(contributions []string) string {
	s := "Prior contributions this round:\n"
	for i, c := range contributions {
		if c == "" {
			continue
		}
		s += fmt.Sprintf("Peer %d: %s\n", i+1, c)
	}
	return s
}
