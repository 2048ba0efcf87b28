package blueprint

import "testing"

func TestAgentDefinitionMaterialize(t *testing.T) {
	def := AgentDefinition{Name: "helper", SystemPrompt: "be concise", MaxTurns: 4}
	agent, err := def.Materialize("gpt-test", BuildEnv{Responder: fakeResponder(t)})
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if agent.Name() != "helper" {
		t.Fatalf("agent.Name() = %q, want helper", agent.Name())
	}
}

func TestAgentDefinitionToBlueprintCarriesFields(t *testing.T) {
	def := AgentDefinition{
		Name:             "helper",
		SystemPrompt:     "be concise",
		Tools:            []string{"echo"},
		InputGuardrails:  []string{"no-swearing"},
		OutputGuardrails: []string{"no-secrets"},
		MaxTurns:         5,
	}
	bp := def.ToBlueprint("gpt-test")
	if bp.Name != def.Name || bp.Model != "gpt-test" || bp.SystemPrompt != def.SystemPrompt {
		t.Fatalf("ToBlueprint() = %+v, want matching Name/Model/SystemPrompt", bp)
	}
	if len(bp.Tools) != 1 || bp.Tools[0] != "echo" {
		t.Fatalf("ToBlueprint().Tools = %v, want [echo]", bp.Tools)
	}
	if bp.MaxTurns != 5 {
		t.Fatalf("ToBlueprint().MaxTurns = %d, want 5", bp.MaxTurns)
	}
}

func TestDefinitionSchemaDocRequiresNameAndSystemPrompt(t *testing.T) {
	required, ok := DefinitionSchemaDoc["required"].([]string)
	if !ok {
		t.Fatalf("DefinitionSchemaDoc[required] missing or wrong type: %#v", DefinitionSchemaDoc["required"])
	}
	want := map[string]bool{"name": true, "system_prompt": true}
	if len(required) != len(want) {
		t.Fatalf("DefinitionSchemaDoc[required] = %v, want exactly %v", required, want)
	}
	for _, name := range required {
		if !want[name] {
			t.Errorf("DefinitionSchemaDoc[required] unexpectedly contains %q", name)
		}
	}
}
