package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/principled-summit/internal/advisor"
	"github.com/freeeve/principled-summit/internal/model"
	"github.com/freeeve/principled-summit/internal/repository"
	"github.com/freeeve/principled-summit/pkg/negotiation"
)

var (
	ErrSessionNotFound  = errors.New("no active session; select a persona first")
	ErrSessionConcluded = errors.New("the agreement is concluded; the session is frozen")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrInvalidPersona   = errors.New("invalid persona")
	ErrNoArchive        = errors.New("agreement archive is not configured")
)

// NegotiationService orchestrates sessions: persona selection, the
// per-turn pipeline (detector, judge, ledger, exchange, responder, in
// that order), and the agreement gate actions.
type NegotiationService struct {
	store   repository.SessionStore
	adv     advisor.Advisor
	bcast   Broadcaster
	archive repository.AgreementArchive

	baseline float64
	batna    map[negotiation.Persona]float64
}

// NewNegotiationService creates a NegotiationService.
func NewNegotiationService(store repository.SessionStore, adv advisor.Advisor, bcast Broadcaster, baseline float64, batna map[negotiation.Persona]float64) *NegotiationService {
	if bcast == nil {
		bcast = NoopBroadcaster{}
	}
	return &NegotiationService{
		store:    store,
		adv:      adv,
		bcast:    bcast,
		baseline: baseline,
		batna:    batna,
	}
}

// SetArchive wires the optional concluded-agreement archive.
func (svc *NegotiationService) SetArchive(a repository.AgreementArchive) {
	svc.archive = a
}

// TurnResult is everything a single message turn produced.
type TurnResult struct {
	Verdict     negotiation.Verdict             `json:"judge"`
	JudgeFailed bool                            `json:"judgeFailed,omitempty"`
	Detection   negotiation.Detection           `json:"concession"`
	Mode        negotiation.Mode                `json:"mode"`
	Exchange    *negotiation.ExchangeResult     `json:"exchange,omitempty"`
	ReplyText   string                          `json:"replyText"`
	ReplyFailed bool                            `json:"replyFailed,omitempty"`
	Session     *negotiation.Session            `json:"session"`
	Projected   map[negotiation.Persona]float64 `json:"projectedScores"`
}

// GateOutcome is the result of an agreement-gate action.
type GateOutcome struct {
	Result        negotiation.GateResult `json:"result"`
	AgreementText string                 `json:"agreementText,omitempty"`
	Session       *negotiation.Session   `json:"session"`
}

// StartSession creates (or recreates) the user's session for the chosen
// persona. Selecting a persona always produces a fresh session; any
// previous state is discarded.
func (svc *NegotiationService) StartSession(ctx context.Context, userID, persona string) (*negotiation.Session, error) {
	p, ok := negotiation.ParsePersona(persona)
	if !ok {
		return nil, ErrInvalidPersona
	}
	s := negotiation.NewSession(p, svc.baseline, svc.batna[p], svc.batna[p.Opponent()])
	if err := svc.store.Save(ctx, userID, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	svc.bcast.BroadcastSessionEvent(userID, EventSessionStarted, map[string]any{"persona": p})
	return s, nil
}

// GetSession returns the user's current session.
func (svc *NegotiationService) GetSession(ctx context.Context, userID string) (*negotiation.Session, error) {
	s, err := svc.store.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// ResetSession discards the user's session entirely.
func (svc *NegotiationService) ResetSession(ctx context.Context, userID string) error {
	if err := svc.store.Delete(ctx, userID); err != nil {
		return err
	}
	svc.bcast.BroadcastSessionEvent(userID, EventSessionReset, map[string]any{})
	return nil
}

// PlayTurn processes one human message. The pipeline order is fixed:
// concession detection first (it decides whether the judge runs at all),
// then the judge, then ledger updates, then exchange resolution against a
// pending opponent offer, and finally the opponent responder with the
// already-updated pending state. Collaborator failures degrade the turn
// but never roll back ledger mutations already applied.
func (svc *NegotiationService) PlayTurn(ctx context.Context, userID, message string) (*TurnResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	s, err := svc.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.Concluded {
		return nil, ErrSessionConcluded
	}

	s.Append("user", message)
	res := &TurnResult{}

	det, derr := svc.adv.DetectConcession(ctx, message, s.Persona)
	if derr != nil {
		log.Warn().Err(derr).Str("userId", userID).Msg("Concession detector failed, treating as no match")
		det = negotiation.Detection{Rationale: "Concession check failed."}
	}
	if det.Matched {
		// Never trust a key outside the persona's catalog.
		if _, ok := negotiation.ConcessionByKey(s.Persona, det.ConcessionKey); !ok {
			det.Matched = false
			det.ConcessionKey = ""
		}
	}
	res.Detection = det

	if det.Matched {
		res.Verdict = negotiation.SkippedVerdict()
	} else {
		verdict, jerr := svc.adv.Judge(ctx, s.Conversation, message)
		if jerr != nil {
			log.Warn().Err(jerr).Str("userId", userID).Msg("Judge failed for this turn")
			res.JudgeFailed = true
			verdict = negotiation.Verdict{Outcome: negotiation.OutcomeUnfollowed, Reason: "Judge unavailable for this turn."}
		}
		res.Verdict = verdict
	}
	res.Mode = negotiation.ModeForOutcome(res.Verdict.Outcome)

	if det.Matched {
		if conc, applied := s.ApplyUserConcession(det.ConcessionKey); applied {
			svc.bcast.BroadcastSessionEvent(userID, EventConcessionConfirmed, map[string]any{
				"by": s.Persona, "key": conc.Key,
			})
			res.Exchange = s.ResolveExchange(conc)
		}
	}

	if res.Exchange != nil {
		// The exchange verdict is the opponent's reply for this turn.
		res.ReplyText = res.Exchange.Reply
		if res.Exchange.Accepted && len(s.ConfirmedByOpponent) > 0 {
			svc.bcast.BroadcastSessionEvent(userID, EventConcessionConfirmed, map[string]any{
				"by": s.Opponent, "key": s.ConfirmedByOpponent[len(s.ConfirmedByOpponent)-1].Key,
			})
		}
	} else {
		svc.requestReply(ctx, userID, s, det.ConcessionKey, res)
	}

	if !res.ReplyFailed {
		s.Append("assistant", res.ReplyText)
	}

	if err := svc.store.Save(ctx, userID, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	res.Session = s
	res.Projected = s.ProjectedScores()
	svc.bcast.BroadcastSessionEvent(userID, EventTurnResolved, map[string]any{
		"mode":   res.Mode,
		"scores": s.CurrentScores(),
	})
	return res, nil
}

// requestReply asks the opponent responder for a fresh reply and applies
// its pending-offer proposal or acceptance signal to the session.
func (svc *NegotiationService) requestReply(ctx context.Context, userID string, s *negotiation.Session, userConcessionKey string, res *TurnResult) {
	var pendingKey string
	if s.PendingOffer != nil {
		pendingKey = s.PendingOffer.Key
	}
	resp, err := svc.adv.Respond(ctx, advisor.ResponseRequest{
		Conversation:      s.Conversation,
		Mode:              res.Mode,
		Opponent:          s.Opponent,
		UserConcessionKey: userConcessionKey,
		PendingOfferKey:   pendingKey,
	})
	if err != nil {
		log.Warn().Err(err).Str("userId", userID).Msg("Opponent responder failed for this turn")
		res.ReplyFailed = true
		res.ReplyText = "[response failed]"
		return
	}

	res.ReplyText = resp.ReplyText
	if res.ReplyText == "" {
		res.ReplyText = "[no text]"
	}

	// The responder's acceptance signal is authoritative over the
	// locally held pending key.
	if resp.Accepted != nil && *resp.Accepted && s.PendingOffer != nil {
		confirmed := *s.PendingOffer
		if s.ApplyOpponentConcession(confirmed) {
			svc.bcast.BroadcastSessionEvent(userID, EventConcessionConfirmed, map[string]any{
				"by": s.Opponent, "key": confirmed.Key,
			})
		}
		s.PendingOffer = nil
	}

	// Only an opportunity reply may introduce a new pending offer, and
	// only with a key from the opponent's catalog that has not already
	// confirmed.
	if res.Mode == negotiation.ModeOpportunity && resp.PendingConcessionKey != "" {
		if c, ok := negotiation.ConcessionByKey(s.Opponent, resp.PendingConcessionKey); ok && !s.UsedTriggerKeys[c.Key] {
			s.PendingOffer = &c
			svc.bcast.BroadcastSessionEvent(userID, EventOfferPending, map[string]any{"key": c.Key})
		}
	}
}

// RequestAgreement performs the user-initiated readiness action.
func (svc *NegotiationService) RequestAgreement(ctx context.Context, userID string) (*GateOutcome, error) {
	s, err := svc.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := s.RequestAgreement()
	if err := svc.store.Save(ctx, userID, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	svc.bcast.BroadcastSessionEvent(userID, EventAgreementRequested, map[string]any{
		"ok": result.OK, "message": result.Message,
	})
	return &GateOutcome{Result: result, Session: s}, nil
}

// ConcludeAgreement performs the conclude action, archiving the signed
// agreement on success. Archive failures are logged but never undo the
// conclusion.
func (svc *NegotiationService) ConcludeAgreement(ctx context.Context, userID string) (*GateOutcome, error) {
	s, err := svc.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := s.Conclude()
	if !result.OK {
		return &GateOutcome{Result: result, Session: s}, nil
	}

	if err := svc.store.Save(ctx, userID, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	text := s.AgreementText()
	if svc.archive != nil {
		rec := &model.AgreementRecord{
			UserID:              userID,
			Persona:             string(s.Persona),
			UserScore:           s.Scores[s.Persona],
			OpponentScore:       s.Scores[s.Opponent],
			UserConcessions:     concessionKeys(s.ConfirmedByUser),
			OpponentConcessions: concessionKeys(s.ConfirmedByOpponent),
			AgreementText:       text,
			ConcludedAt:         *s.ConcludedAt,
		}
		if err := svc.archive.Record(ctx, rec); err != nil {
			log.Error().Err(err).Str("userId", userID).Msg("Failed to archive concluded agreement (non-fatal)")
		}
	}

	svc.bcast.BroadcastSessionEvent(userID, EventAgreementConcluded, map[string]any{
		"agreementText": text,
	})
	return &GateOutcome{Result: result, AgreementText: text, Session: s}, nil
}

// ListAgreements returns recently archived agreements.
func (svc *NegotiationService) ListAgreements(ctx context.Context, limit int) ([]model.AgreementRecord, error) {
	if svc.archive == nil {
		return nil, ErrNoArchive
	}
	return svc.archive.List(ctx, limit)
}

func concessionKeys(list []negotiation.Concession) []string {
	keys := make([]string, len(list))
	for i, c := range list {
		keys[i] = c.Key
	}
	return keys
}
