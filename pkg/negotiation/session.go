package negotiation

import "time"

// DefaultBaselineScore is the starting score for both parties.
const DefaultBaselineScore = 50

// DefaultBATNA is the default walk-away threshold for both parties.
const DefaultBATNA = 60

// ChatMessage is one entry in the session transcript.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// GateState names the agreement gate's position.
type GateState string

const (
	GateOpen         GateState = "open"
	GateReadyPending GateState = "ready_pending"
	GateConcluded    GateState = "concluded"
)

// Session is the mutable aggregate for one negotiation. It is created when
// a persona is selected, fully reset on persona change, and holds no
// references into the static catalogs that could be mutated through it.
// All fields serialize to JSON so a session can round-trip through an
// external store.
type Session struct {
	Persona  Persona `json:"persona"`
	Opponent Persona `json:"opponent"`

	Scores map[Persona]float64 `json:"scores"`
	BATNA  map[Persona]float64 `json:"batna"`

	ConfirmedByUser     []Concession `json:"confirmedByUser"`
	ConfirmedByOpponent []Concession `json:"confirmedByOpponent"`
	PendingOffer        *Concession  `json:"pendingOffer,omitempty"`

	// UsedTriggerKeys guards the ledger: a key listed here never changes
	// scores again, no matter how often it is re-detected.
	UsedTriggerKeys map[string]bool `json:"usedTriggerKeys"`

	UserReady     bool `json:"userReady"`
	OpponentReady bool `json:"opponentReady"`
	Concluded     bool `json:"concluded"`

	Conversation []ChatMessage `json:"conversation"`

	StartedAt   time.Time  `json:"startedAt"`
	ConcludedAt *time.Time `json:"concludedAt,omitempty"`
}

// NewSession creates a fresh session for the given persona with both
// parties at the baseline score and the given BATNA thresholds.
func NewSession(persona Persona, baseline, batnaUser, batnaOpponent float64) *Session {
	opp := persona.Opponent()
	return &Session{
		Persona:  persona,
		Opponent: opp,
		Scores: map[Persona]float64{
			persona: baseline,
			opp:     baseline,
		},
		BATNA: map[Persona]float64{
			persona: batnaUser,
			opp:     batnaOpponent,
		},
		UsedTriggerKeys: make(map[string]bool),
		StartedAt:       time.Now().UTC(),
	}
}

// GateState returns the agreement gate's current position.
func (s *Session) GateState() GateState {
	switch {
	case s.Concluded:
		return GateConcluded
	case s.UserReady:
		return GateReadyPending
	default:
		return GateOpen
	}
}

// Append records a transcript entry.
func (s *Session) Append(role, content string) {
	s.Conversation = append(s.Conversation, ChatMessage{Role: role, Content: content})
}

// AvailableConcessions returns the user's catalog entries not yet confirmed.
func (s *Session) AvailableConcessions() []Concession {
	var out []Concession
	for _, c := range Concessions(s.Persona) {
		if !s.UsedTriggerKeys[c.Key] {
			out = append(out, c)
		}
	}
	return out
}
