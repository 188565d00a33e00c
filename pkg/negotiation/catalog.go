// Package negotiation implements the core two-party negotiation engine:
// the static rule and concession catalogs, the session ledger, exchange
// evaluation, and the agreement state machine. It is pure state logic and
// performs no I/O; the language-model collaborators that feed it live in
// internal/advisor.
package negotiation

// Persona identifies one of the two fixed negotiating parties.
type Persona string

const (
	PersonaTrump Persona = "trump"
	PersonaPutin Persona = "putin"
)

// ParsePersona validates a persona string.
func ParsePersona(s string) (Persona, bool) {
	switch Persona(s) {
	case PersonaTrump, PersonaPutin:
		return Persona(s), true
	}
	return "", false
}

// Opponent returns the other party.
func (p Persona) Opponent() Persona {
	if p == PersonaTrump {
		return PersonaPutin
	}
	return PersonaTrump
}

// Rule is one of the five principled-negotiation rules. Rules are
// vocabulary for the judge collaborator; the engine never enforces them.
type Rule struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Concession is a one-way offer drawn from a persona's fixed catalog.
// MakerCost is borne by whoever offers it; ReceiverGain benefits the
// other side. Both are small positive integers.
type Concession struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	MakerCost    int    `json:"makerCost"`
	ReceiverGain int    `json:"receiverGain"`
}

var rules = []Rule{
	{Key: "separate_people_from_problem", Title: "Separate people from the problem", Description: "Addresses the issue without attacking character; acknowledges emotions and relationships while focusing on the substantive problem."},
	{Key: "focus_on_interests", Title: "Focus on interests, not positions", Description: "Explores underlying motivations and needs, not fixed demands."},
	{Key: "invent_options_for_mutual_gain", Title: "Invent options for mutual gain", Description: "Proposes creative, multiple options that expand the pie for both sides."},
	{Key: "use_objective_criteria", Title: "Insist on objective criteria", Description: "Suggests standards, benchmarks, or independent norms to resolve differences."},
	{Key: "consider_batna", Title: "Know and improve BATNA", Description: "References alternatives and strengthens no-deal options without making threats."},
}

var concessions = map[Persona][]Concession{
	PersonaTrump: {
		{Key: "tariff_relief", Label: "Tariff relief on specific categories", MakerCost: 3, ReceiverGain: 9},
		{Key: "sanctions_easing", Label: "Limited sanctions easing tied to milestones", MakerCost: 4, ReceiverGain: 10},
		{Key: "security_assurances", Label: "Narrow security assurances (non-escalation pledge)", MakerCost: 2, ReceiverGain: 8},
		{Key: "timeline_extension", Label: "Timeline extension on compliance", MakerCost: 2, ReceiverGain: 7},
		{Key: "joint_statement", Label: "Joint statement recognizing mutual interests", MakerCost: 1, ReceiverGain: 6},
	},
	PersonaPutin: {
		{Key: "deescalation_steps", Label: "De-escalation steps and troop repositioning", MakerCost: 3, ReceiverGain: 9},
		{Key: "inspections_access", Label: "Expanded inspections/transparency access", MakerCost: 2, ReceiverGain: 8},
		{Key: "cyber_restraints", Label: "Cyber restraint commitments", MakerCost: 2, ReceiverGain: 8},
		{Key: "prisoner_exchange", Label: "Prisoner exchange and humanitarian corridors", MakerCost: 3, ReceiverGain: 9},
		{Key: "joint_taskforce", Label: "Joint taskforce on mutual concerns", MakerCost: 1, ReceiverGain: 6},
	},
}

// Rules returns the five principled-negotiation rules.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// RuleKeys returns the rule keys in catalog order.
func RuleKeys() []string {
	keys := make([]string, len(rules))
	for i, r := range rules {
		keys[i] = r.Key
	}
	return keys
}

// Concessions returns the concession catalog for a persona.
func Concessions(p Persona) []Concession {
	src := concessions[p]
	out := make([]Concession, len(src))
	copy(out, src)
	return out
}

// AllConcessions returns both catalogs keyed by persona.
func AllConcessions() map[Persona][]Concession {
	return map[Persona][]Concession{
		PersonaTrump: Concessions(PersonaTrump),
		PersonaPutin: Concessions(PersonaPutin),
	}
}

// ConcessionByKey looks up a concession in one persona's catalog. The two
// catalogs are independent namespaces; a key valid for one persona is not
// valid for the other.
func ConcessionByKey(p Persona, key string) (Concession, bool) {
	for _, c := range concessions[p] {
		if c.Key == key {
			return c, true
		}
	}
	return Concession{}, false
}
