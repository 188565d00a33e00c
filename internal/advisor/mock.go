package advisor

import (
	"context"
	"regexp"
	"strings"

	"github.com/freeeve/principled-summit/pkg/negotiation"
)

// Keyword patterns for the deterministic fallback. They mirror the live
// prompts closely enough that a session plays out with the same structure.
var (
	concessionPhraseRe = regexp.MustCompile(`(?i)(concede|concession|i will|we will|i am willing|we are willing)`)
	interestsRe        = regexp.MustCompile(`(?i)(interest|mutual|win-win)`)
	optionsRe          = regexp.MustCompile(`(?i)(option|multiple solutions|creative)`)
	criteriaRe         = regexp.MustCompile(`(?i)(objective|criteria|benchmark|standard)`)
	batnaRe            = regexp.MustCompile(`(?i)(batna|alternative|walk away)`)
	personalAttackRe   = regexp.MustCompile(`(?i)(idiot|stupid|ridiculous|you people)`)
)

// MockAdvisor is the local deterministic collaborator used when no live
// backend is configured. Results are structurally identical to the live
// advisor's.
type MockAdvisor struct{}

// NewMockAdvisor creates the keyword-pattern fallback advisor.
func NewMockAdvisor() *MockAdvisor {
	return &MockAdvisor{}
}

// Judge applies keyword heuristics in a fixed order.
func (*MockAdvisor) Judge(_ context.Context, _ []negotiation.ChatMessage, lastMessage string) (negotiation.Verdict, error) {
	switch {
	case concessionPhraseRe.MatchString(lastMessage):
		return negotiation.Verdict{Outcome: negotiation.OutcomeUnfollowed, Reason: "Concession proposal detected; rule check skipped."}, nil
	case interestsRe.MatchString(lastMessage):
		return negotiation.Verdict{Outcome: negotiation.OutcomeYes, RuleFollowed: "focus_on_interests", Reason: "Focuses on interests."}, nil
	case optionsRe.MatchString(lastMessage):
		return negotiation.Verdict{Outcome: negotiation.OutcomeYes, RuleFollowed: "invent_options_for_mutual_gain", Reason: "Options for mutual gain."}, nil
	case criteriaRe.MatchString(lastMessage):
		return negotiation.Verdict{Outcome: negotiation.OutcomeYes, RuleFollowed: "use_objective_criteria", Reason: "Objective criteria."}, nil
	case batnaRe.MatchString(lastMessage):
		return negotiation.Verdict{Outcome: negotiation.OutcomeYes, RuleFollowed: "consider_batna", Reason: "Considers alternatives."}, nil
	case personalAttackRe.MatchString(lastMessage):
		return negotiation.Verdict{Outcome: negotiation.OutcomeBreached, RuleBreached: "separate_people_from_problem", Reason: "Personal attack."}, nil
	default:
		return negotiation.Verdict{Outcome: negotiation.OutcomeUnfollowed, Reason: "No clear principled rule detected."}, nil
	}
}

// DetectConcession matches the message against the persona's catalog by
// key (underscores as spaces) or by the first word of the label.
func (*MockAdvisor) DetectConcession(_ context.Context, message string, persona negotiation.Persona) (negotiation.Detection, error) {
	text := strings.ToLower(message)
	for _, c := range negotiation.Concessions(persona) {
		keyHit := strings.Contains(text, strings.ReplaceAll(c.Key, "_", " "))
		labelWord := strings.ToLower(strings.SplitN(c.Label, " ", 2)[0])
		labelHit := labelWord != "" && strings.Contains(text, labelWord)
		if keyHit || labelHit {
			return negotiation.Detection{Matched: true, ConcessionKey: c.Key, Rationale: "Detected a concession declaration."}, nil
		}
	}
	return negotiation.Detection{Matched: false, Rationale: "No concession keywords detected."}, nil
}

// Respond returns a fixed professional reply; in opportunity mode it
// proposes the first catalog concession as pending.
func (*MockAdvisor) Respond(_ context.Context, req ResponseRequest) (Response, error) {
	if req.Mode == negotiation.ModeUnconstructive {
		return Response{ReplyText: "Let us keep this professional and focus on concrete issues and facts."}, nil
	}
	list := negotiation.Concessions(req.Opponent)
	var pending string
	if len(list) > 0 {
		pending = list[0].Key
	}
	return Response{
		ReplyText:            "Acknowledged. We can tentatively advance if reciprocity is meaningful.",
		PendingConcessionKey: pending,
	}, nil
}
