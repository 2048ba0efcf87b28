package multiagent

import (
	"context"
	"testing"

	"github.com/wrenlabs/agentresponses/agentcore"
)

func TestNewSupervisorCallsWorkerAsTool(t *testing.T) {
	worker := fakeAgent(t, "billing", "your invoice is settled")
	orchestratorResponder := fakeToolCallingResponder(t, "billing", `{"input":"check my invoice"}`, "here's what billing said")

	supervisor, err := NewSupervisor("support", []agentcore.Option{
		agentcore.WithResponder(orchestratorResponder),
		agentcore.WithModel("test-model"),
	}, []Worker{
		{Name: "billing", Description: "handles billing questions", Agent: worker},
	})
	if err != nil {
		t.Fatalf("NewSupervisor() error = %v", err)
	}
	if supervisor.Name() != "support" {
		t.Fatalf("supervisor.Name() = %q, want %q", supervisor.Name(), "support")
	}

	result := supervisor.Interact(context.Background(), agentcore.NewAgentContext(""), "can you check my invoice?")
	success, ok := result.(agentcore.Success)
	if !ok {
		t.Fatalf("Interact() result = %#v, want agentcore.Success", result)
	}
	if success.Output != "here's what billing said" {
		t.Fatalf("Interact() output = %q, want %q", success.Output, "here's what billing said")
	}
}

func TestNewSupervisorWorkerToolIsReachableWithBareOrchestratorOpts(t *testing.T) {
	// NewSupervisor appends its own WithToolLookup after orchestratorOpts,
	// so a worker tool is reachable even if the caller's opts configure
	// nothing tool-related at all.
	worker := fakeAgent(t, "sales", "sale made")
	supervisor, err := NewSupervisor("boss", []agentcore.Option{
		agentcore.WithResponder(fakeToolCallingResponder(t, "sales", `{"input":"sell it"}`, "sold")),
		agentcore.WithModel("test-model"),
	}, []Worker{
		{Name: "sales", Description: "handles sales", Agent: worker},
	})
	if err != nil {
		t.Fatalf("NewSupervisor() error = %v", err)
	}

	result := supervisor.Interact(context.Background(), agentcore.NewAgentContext(""), "sell this")
	if _, ok := result.(agentcore.Success); !ok {
		t.Fatalf("Interact() result = %#v, want agentcore.Success once the worker tool is reachable", result)
	}
}
