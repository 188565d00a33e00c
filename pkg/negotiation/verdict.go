package negotiation

// Outcome is the judge collaborator's three-way verdict on a message.
type Outcome string

const (
	OutcomeYes        Outcome = "yes"
	OutcomeBreached   Outcome = "no_breached"
	OutcomeUnfollowed Outcome = "no_unfollowed"
)

// Valid reports whether o is one of the three allowed outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeYes, OutcomeBreached, OutcomeUnfollowed:
		return true
	}
	return false
}

// Verdict is the structured result of judging a message against the
// principled-negotiation rules.
type Verdict struct {
	Outcome      Outcome `json:"outcome"`
	RuleFollowed string  `json:"ruleFollowed,omitempty"`
	RuleBreached string  `json:"ruleBreached,omitempty"`
	Reason       string  `json:"reason"`
}

// SkippedVerdict is the default verdict recorded for a concession turn,
// where rule judging is bypassed entirely. The turn's response mode still
// derives from this verdict, so a concession turn is not automatically an
// opportunity turn.
func SkippedVerdict() Verdict {
	return Verdict{Outcome: OutcomeUnfollowed, Reason: "Concession proposal detected; rule check skipped."}
}

// UnparseableVerdict is the fallback when the judge's output cannot be
// decoded into a verdict.
func UnparseableVerdict() Verdict {
	return Verdict{Outcome: OutcomeUnfollowed, Reason: "Unparseable response"}
}

// Mode is the opponent responder's stance for a turn.
type Mode string

const (
	ModeOpportunity    Mode = "opportunity"
	ModeUnconstructive Mode = "unconstructive"
)

// ModeForOutcome derives the response mode from a verdict outcome. Only a
// "yes" verdict produces an opportunity reply.
func ModeForOutcome(o Outcome) Mode {
	if o == OutcomeYes {
		return ModeOpportunity
	}
	return ModeUnconstructive
}

// Detection is the structured result of the concession detector.
type Detection struct {
	Matched       bool   `json:"matched"`
	ConcessionKey string `json:"concessionKey,omitempty"`
	Rationale     string `json:"rationale"`
}
