// Package advisor provides the three natural-language collaborators the
// negotiation engine consumes: the rule judge, the concession detector,
// and the opponent responder. A live OpenAI-backed implementation and a
// deterministic keyword mock implement the same interface; callers cannot
// distinguish them except by fidelity.
package advisor

import (
	"context"

	"github.com/freeeve/principled-summit/pkg/negotiation"
)

// ResponseRequest carries everything the opponent responder needs,
// including the already-updated pending-offer state for the turn.
type ResponseRequest struct {
	Conversation      []negotiation.ChatMessage
	Mode              negotiation.Mode
	Opponent          negotiation.Persona
	UserConcessionKey string
	PendingOfferKey   string
}

// Response is the opponent responder's structured output. In opportunity
// mode it may propose one pending concession from the opponent's catalog;
// in unconstructive mode it must not. Accepted, when present, is the
// authoritative resolution of the outstanding exchange.
type Response struct {
	ReplyText            string `json:"replyText"`
	PendingConcessionKey string `json:"pendingOppConcessionKey,omitempty"`
	Accepted             *bool  `json:"accepted,omitempty"`
}

// Advisor is the collaborator contract consumed by the negotiation service.
type Advisor interface {
	// Judge decides whether the last message follows one of the five
	// principled-negotiation rules.
	Judge(ctx context.Context, conversation []negotiation.ChatMessage, lastMessage string) (negotiation.Verdict, error)

	// DetectConcession maps a free-text message to a concession key from
	// the given persona's catalog, or reports no match.
	DetectConcession(ctx context.Context, message string, persona negotiation.Persona) (negotiation.Detection, error)

	// Respond drafts the opponent's reply for the turn.
	Respond(ctx context.Context, req ResponseRequest) (Response, error)
}

// New selects the live OpenAI advisor when an API key is configured and
// falls back to the deterministic mock otherwise, so the game always runs.
func New(apiKey, model string) Advisor {
	if apiKey == "" {
		return NewMockAdvisor()
	}
	return NewOpenAIAdvisor(apiKey, model)
}
