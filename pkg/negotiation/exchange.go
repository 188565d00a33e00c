package negotiation

import "fmt"

// ExchangeResult records the outcome of weighing a fresh user concession
// against the opponent's outstanding offer.
type ExchangeResult struct {
	Accepted     bool   `json:"accepted"`
	Reply        string `json:"reply"`
	OpponentCost int    `json:"opponentCost"`
	UserBenefit  int    `json:"userBenefit"`
}

const exchangeAcceptedReply = "We accept your concession; it sufficiently offsets our proposed cost. Let us proceed."

// EvaluateExchange applies the acceptance predicate: the exchange is
// accepted iff the benefit the opponent receives from the user's offer is
// at least what fulfilling their own pending offer would cost them. Ties
// accept. The rejection message states both compared numbers.
func EvaluateExchange(userOffer, opponentPending Concession) ExchangeResult {
	benefit := userOffer.ReceiverGain
	cost := opponentPending.MakerCost
	if benefit >= cost {
		return ExchangeResult{
			Accepted:     true,
			Reply:        exchangeAcceptedReply,
			OpponentCost: cost,
			UserBenefit:  benefit,
		}
	}
	return ExchangeResult{
		Accepted:     false,
		Reply:        fmt.Sprintf("We cannot accept this exchange: our cost (%d) outweighs the benefit to us (%d).", cost, benefit),
		OpponentCost: cost,
		UserBenefit:  benefit,
	}
}

// ResolveExchange evaluates the user's freshly confirmed concession against
// the pending opponent offer. On acceptance the pending offer converts to a
// confirmed opponent concession and clears; on rejection it is retained
// unchanged. Returns nil when there is no pending offer to resolve.
func (s *Session) ResolveExchange(userOffer Concession) *ExchangeResult {
	if s.PendingOffer == nil {
		return nil
	}
	res := EvaluateExchange(userOffer, *s.PendingOffer)
	if res.Accepted {
		s.ApplyOpponentConcession(*s.PendingOffer)
		s.PendingOffer = nil
	}
	return &res
}
