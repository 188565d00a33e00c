package model

import "time"

// AgreementRecord is the archived form of a concluded negotiation. It is
// written once when an agreement is signed and never read back into a live
// session; the archive is purely a record.
type AgreementRecord struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	Persona             string    `json:"persona"`
	UserScore           float64   `json:"user_score"`
	OpponentScore       float64   `json:"opponent_score"`
	UserConcessions     []string  `json:"user_concessions"`
	OpponentConcessions []string  `json:"opponent_concessions"`
	AgreementText       string    `json:"agreement_text"`
	ConcludedAt         time.Time `json:"concluded_at"`
}
