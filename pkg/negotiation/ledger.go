package negotiation

// ApplyUserConcession confirms a concession declared by the human player.
// The key must exist in the user's own catalog and must not have triggered
// a score change before; otherwise this is a no-op. On success the maker's
// cost is subtracted from the user's score and the receiver's gain is added
// to the opponent's.
func (s *Session) ApplyUserConcession(key string) (Concession, bool) {
	c, ok := ConcessionByKey(s.Persona, key)
	if !ok || s.UsedTriggerKeys[key] {
		return Concession{}, false
	}
	s.ConfirmedByUser = append(s.ConfirmedByUser, c)
	s.UsedTriggerKeys[key] = true
	s.Scores[s.Persona] -= float64(c.MakerCost)
	s.Scores[s.Opponent] += float64(c.ReceiverGain)
	return c, true
}

// ApplyOpponentConcession confirms a concession made by the opponent, with
// the symmetric cost/gain transfer. Duplicate keys are a no-op.
func (s *Session) ApplyOpponentConcession(c Concession) bool {
	if _, ok := ConcessionByKey(s.Opponent, c.Key); !ok || s.UsedTriggerKeys[c.Key] {
		return false
	}
	s.ConfirmedByOpponent = append(s.ConfirmedByOpponent, c)
	s.UsedTriggerKeys[c.Key] = true
	s.Scores[s.Opponent] -= float64(c.MakerCost)
	s.Scores[s.Persona] += float64(c.ReceiverGain)
	return true
}

// CurrentScores returns a copy of the authoritative scores. The engine
// never clamps; any 0..100 clamping is display-only.
func (s *Session) CurrentScores() map[Persona]float64 {
	out := make(map[Persona]float64, len(s.Scores))
	for p, v := range s.Scores {
		out[p] = v
	}
	return out
}

// ProjectedScores returns the current scores plus the hypothetical effect
// of the pending opponent offer applied once. The ledger is not mutated;
// if the offer later confirms, the real transfer happens then, so nothing
// is double-counted.
func (s *Session) ProjectedScores() map[Persona]float64 {
	out := s.CurrentScores()
	if s.PendingOffer != nil {
		out[s.Opponent] -= float64(s.PendingOffer.MakerCost)
		out[s.Persona] += float64(s.PendingOffer.ReceiverGain)
	}
	return out
}
