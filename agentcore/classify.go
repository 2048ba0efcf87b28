package agentcore

import (
	"context"
	"errors"
	"net/http"

	"github.com/wrenlabs/agentresponses/agenterrors"
	"github.com/wrenlabs/agentresponses/responses"
)

// classifyLLMError maps a failed Responder.Respond/RespondStream call to the
// closed agenterrors.Kind set (§7 table), since the Responder itself only
// exhausts retries and returns a generic error — the loop is where a final
// failure gets its user-facing classification.
func classifyLLMError(err error) *agenterrors.AgentError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return agenterrors.Wrap(agenterrors.KindCancelled, "cancelled", err)
	}

	var httpErr *responses.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests:
			return agenterrors.Wrap(agenterrors.KindRateLimit, "rate_limited", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return agenterrors.Wrap(agenterrors.KindAuthentication, "unauthenticated", err)
		default:
			if httpErr.StatusCode >= 500 {
				return agenterrors.Wrap(agenterrors.KindServer, "server_error", err)
			}
			return agenterrors.Wrap(agenterrors.KindInvalidRequest, "invalid_request", err)
		}
	}

	return agenterrors.Wrap(agenterrors.KindStreaming, "transport_error", err)
}
