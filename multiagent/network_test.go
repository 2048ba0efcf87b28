package multiagent

import (
	"context"
	"testing"

	"github.com/wrenlabs/agentresponses/agentcore"
)

func TestAgentNetworkRunReturnsLastRoundWithoutSynthesizer(t *testing.T) {
	n := NewAgentNetwork(2, fakeAgent(t, "a", "alpha"), fakeAgent(t, "b", "bravo"))

	result, err := n.Run(context.Background(), "discuss")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	success, ok := result.(agentcore.Success)
	if !ok {
		t.Fatalf("Run() result = %#v, want agentcore.Success", result)
	}
	if success.Output != "bravo" {
		t.Fatalf("Run() output = %q, want the last peer's output %q", success.Output, "bravo")
	}
}

func TestAgentNetworkRunWithSynthesizer(t *testing.T) {
	n := NewAgentNetwork(1, fakeAgent(t, "a", "alpha"), fakeAgent(t, "b", "bravo"))
	n.Synthesizer = AgentSynthesizer(fakeAgent(t, "synth", "combined"))

	result, err := n.Run(context.Background(), "discuss")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	success, ok := result.(agentcore.Success)
	if !ok {
		t.Fatalf("Run() result = %#v, want agentcore.Success", result)
	}
	if success.Output != "combined" {
		t.Fatalf("Run() output = %q, want %q", success.Output, "combined")
	}
}

func TestAgentNetworkBroadcastRunsAllPeersOnOriginalInput(t *testing.T) {
	n := NewAgentNetwork(1, fakeAgent(t, "a", "alpha"), fakeAgent(t, "b", "bravo"))

	results, err := n.Broadcast(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Broadcast() returned %d results, want 2", len(results))
	}
}

func TestAgentNetworkRunZeroRoundsErrors(t *testing.T) {
	n := NewAgentNetwork(0, fakeAgent(t, "a", "alpha"))

	_, err := n.Run(context.Background(), "discuss")
	if err == nil {
		t.Fatalf("Run() with MaxRounds=0 should error, got nil")
	}
}
