package negotiation

import (
	"fmt"
	"strings"
	"time"
)

// GateResult conveys a gate action's outcome as explanatory text plus a
// success flag. Precondition misses are normal negative outcomes, not
// errors.
type GateResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// RequestAgreement handles the user-initiated readiness action. It refuses
// while the user's own score is below their BATNA; otherwise it marks the
// user ready and checks the opponent's score against the opponent's BATNA
// directly (the opponent's readiness is a pure function of their current
// score, never a collaborator call).
func (s *Session) RequestAgreement() GateResult {
	if s.Concluded {
		return GateResult{OK: false, Message: "The agreement is already concluded and signed."}
	}
	userScore := s.Scores[s.Persona]
	userBATNA := s.BATNA[s.Persona]
	if userScore < userBATNA {
		return GateResult{
			OK: false,
			Message: fmt.Sprintf("Your current score (%v) is below your BATNA threshold (%v); walking away remains your better alternative.",
				fmtScore(userScore), fmtScore(userBATNA)),
		}
	}
	s.UserReady = true

	oppScore := s.Scores[s.Opponent]
	oppBATNA := s.BATNA[s.Opponent]
	if oppScore < oppBATNA {
		return GateResult{
			OK: true,
			Message: fmt.Sprintf("You are ready to conclude, but your counterpart's score (%v) is still below their BATNA threshold (%v); they will not agree yet.",
				fmtScore(oppScore), fmtScore(oppBATNA)),
		}
	}
	s.OpponentReady = true
	return GateResult{OK: true, Message: "Both parties are ready to conclude. You may now finalize the agreement."}
}

// Conclude finalizes the agreement. The four conditions are checked in
// order and each unmet condition short-circuits with its own message and
// no state change: user readiness, opponent readiness, user score against
// user BATNA, opponent score against opponent BATNA. Conclusion is
// terminal; the session is frozen afterwards.
func (s *Session) Conclude() GateResult {
	if s.Concluded {
		return GateResult{OK: false, Message: "The agreement is already concluded and signed."}
	}
	if !s.UserReady {
		return GateResult{OK: false, Message: "You have not requested to conclude yet; request agreement first."}
	}
	if !s.OpponentReady {
		return GateResult{OK: false, Message: "Your counterpart has not agreed to conclude."}
	}
	if s.Scores[s.Persona] < s.BATNA[s.Persona] {
		return GateResult{
			OK: false,
			Message: fmt.Sprintf("Your score (%v) has fallen below your BATNA threshold (%v); concluding now would be worse than walking away.",
				fmtScore(s.Scores[s.Persona]), fmtScore(s.BATNA[s.Persona])),
		}
	}
	if s.Scores[s.Opponent] < s.BATNA[s.Opponent] {
		return GateResult{
			OK: false,
			Message: fmt.Sprintf("Your counterpart's score (%v) has fallen below their BATNA threshold (%v); they withdraw their agreement.",
				fmtScore(s.Scores[s.Opponent]), fmtScore(s.BATNA[s.Opponent])),
		}
	}
	s.Concluded = true
	now := time.Now().UTC()
	s.ConcludedAt = &now
	return GateResult{OK: true, Message: "Agreement concluded and signed by both parties."}
}

// AgreementText renders the finalized agreement. The confirmed concession
// sets are its substantive content, in confirmation order.
func (s *Session) AgreementText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "AGREEMENT between %s and %s\n\n", strings.ToUpper(string(s.Persona)), strings.ToUpper(string(s.Opponent)))

	fmt.Fprintf(&b, "Commitments by %s:\n", strings.ToUpper(string(s.Persona)))
	writeCommitments(&b, s.ConfirmedByUser)

	fmt.Fprintf(&b, "\nCommitments by %s:\n", strings.ToUpper(string(s.Opponent)))
	writeCommitments(&b, s.ConfirmedByOpponent)

	fmt.Fprintf(&b, "\nFinal standing: %s %v, %s %v.\n",
		strings.ToUpper(string(s.Persona)), fmtScore(s.Scores[s.Persona]),
		strings.ToUpper(string(s.Opponent)), fmtScore(s.Scores[s.Opponent]))
	return b.String()
}

func writeCommitments(b *strings.Builder, list []Concession) {
	if len(list) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for i, c := range list {
		fmt.Fprintf(b, "  %d. %s\n", i+1, c.Label)
	}
}

// fmtScore formats a score without trailing zeros (50 rather than 50.00).
func fmtScore(v float64) string {
	return fmt.Sprintf("%v", v)
}
