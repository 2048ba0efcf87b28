package blueprint

import (
	"os"
	"time"

	"github.com/wrenlabs/agentresponses/responses"
)

// RetryPolicyBlueprint mirrors responses.RetryPolicy's serializable parameters
// (durations flattened to milliseconds for a human-editable JSON document,
// per §6's "Blueprint JSON is human-editable").
type RetryPolicyBlueprint struct {
	MaxRetries        int     `json:"max_retries"`
	InitialDelayMS    int64   `json:"initial_delay_ms"`
	MaxDelayMS        int64   `json:"max_delay_ms"`
	Multiplier        float64 `json:"multiplier"`
	RetryableStatuses []int   `json:"retryable_statuses,omitempty"`
}

func (s RetryPolicyBlueprint) toPolicy() responses.RetryPolicy {
	p := responses.DefaultRetryPolicy()
	if s.MaxRetries > 0 {
		p.MaxRetries = s.MaxRetries
	}
	if s.InitialDelayMS > 0 {
		p.InitialDelay = time.Duration(s.InitialDelayMS) * time.Millisecond
	}
	if s.MaxDelayMS > 0 {
		p.MaxDelay = time.Duration(s.MaxDelayMS) * time.Millisecond
	}
	if s.Multiplier > 0 {
		p.Multiplier = s.Multiplier
	}
	if len(s.RetryableStatuses) > 0 {
		statuses := make(map[int]bool, len(s.RetryableStatuses))
		for _, code := range s.RetryableStatuses {
			statuses[code] = true
		}
		p.RetryableStatuses = statuses
	}
	return p
}

func fromRetryPolicy(p responses.RetryPolicy) *RetryPolicyBlueprint {
	var statuses []int
	for code, ok := range p.RetryableStatuses {
		if ok {
			statuses = append(statuses, code)
		}
	}
	return &RetryPolicyBlueprint{
		MaxRetries:        p.MaxRetries,
		InitialDelayMS:    p.InitialDelay.Milliseconds(),
		MaxDelayMS:        p.MaxDelay.Milliseconds(),
		Multiplier:        p.Multiplier,
		RetryableStatuses: statuses,
	}
}

// ResponderBlueprint carries everything needed to reconstruct a *responses.Responder
// except the HTTP client, which is never serialized (§4.10): provider/base
// URL, the name of the environment variable holding the API key, retry
// policy, and default trace metadata attached to every request's telemetry.
type ResponderBlueprint struct {
	BaseURL              string                `json:"base_url"`
	APIKeyEnvVar         string                `json:"api_key_env_var"`
	RetryPolicy          *RetryPolicyBlueprint `json:"retry_policy,omitempty"`
	DefaultTraceMetadata map[string]string     `json:"default_trace_metadata,omitempty"`
}

// Build reconstructs a live Responder. Restoration reads APIKeyEnvVar from
// the environment; its absence is a ConfigurationError (§4.10).
func (s ResponderBlueprint) Build(path string) (*responses.Responder, error) {
	if s.APIKeyEnvVar == "" {
		return nil, &ConfigurationError{Path: path, Reason: "api_key_env_var is required"}
	}
	apiKey := os.Getenv(s.APIKeyEnvVar)
	if apiKey == "" {
		return nil, &ConfigurationError{Path: path, Reason: "environment variable " + s.APIKeyEnvVar + " is not set"}
	}

	var opts []responses.Option
	if s.RetryPolicy != nil {
		opts = append(opts, responses.WithRetryPolicy(s.RetryPolicy.toPolicy()))
	}
	return responses.NewResponder(s.BaseURL, apiKey, opts...), nil
}

// FromResponder captures a ResponderBlueprint from the construction-time
// parameters used to build a live Responder; since the HTTP client and API
// key are never serialized, the caller supplies apiKeyEnvVar directly
// rather than having it recovered from the (unexported) live Responder.
func FromResponder(baseURL, apiKeyEnvVar string, retry responses.RetryPolicy, traceMetadata map[string]string) ResponderBlueprint {
	return ResponderBlueprint{
		BaseURL:              baseURL,
		APIKeyEnvVar:         apiKeyEnvVar,
		RetryPolicy:          fromRetryPolicy(retry),
		DefaultTraceMetadata: traceMetadata,
	}
}
