package negotiation

import "testing"

func newTestSession(p Persona) *Session {
	return NewSession(p, DefaultBaselineScore, DefaultBATNA, DefaultBATNA)
}

func TestApplyUserConcession(t *testing.T) {
	s := newTestSession(PersonaTrump)

	c, ok := s.ApplyUserConcession("tariff_relief")
	if !ok {
		t.Fatal("expected concession to apply")
	}
	if c.Key != "tariff_relief" {
		t.Errorf("unexpected concession %s", c.Key)
	}
	if got := s.Scores[PersonaTrump]; got != 50-3 {
		t.Errorf("expected trump score 47, got %v", got)
	}
	if got := s.Scores[PersonaPutin]; got != 50+9 {
		t.Errorf("expected putin score 59, got %v", got)
	}
	if len(s.ConfirmedByUser) != 1 {
		t.Errorf("expected 1 confirmed concession, got %d", len(s.ConfirmedByUser))
	}
}

func TestApplyUserConcessionIdempotent(t *testing.T) {
	s := newTestSession(PersonaTrump)

	if _, ok := s.ApplyUserConcession("joint_statement"); !ok {
		t.Fatal("first application should succeed")
	}
	before := s.CurrentScores()

	if _, ok := s.ApplyUserConcession("joint_statement"); ok {
		t.Error("second application should be a no-op")
	}
	after := s.CurrentScores()
	if before[PersonaTrump] != after[PersonaTrump] || before[PersonaPutin] != after[PersonaPutin] {
		t.Errorf("scores changed on duplicate: before=%v after=%v", before, after)
	}
	if len(s.ConfirmedByUser) != 1 {
		t.Errorf("expected key singly recorded, got %d entries", len(s.ConfirmedByUser))
	}
}

func TestApplyUserConcessionUnknownKey(t *testing.T) {
	s := newTestSession(PersonaTrump)

	if _, ok := s.ApplyUserConcession("deescalation_steps"); ok {
		t.Error("opponent-catalog key must not apply as user concession")
	}
	if _, ok := s.ApplyUserConcession("fabricated_key"); ok {
		t.Error("unknown key must not apply")
	}
	if s.Scores[PersonaTrump] != 50 || s.Scores[PersonaPutin] != 50 {
		t.Errorf("scores must be untouched, got %v", s.Scores)
	}
	if len(s.ConfirmedByUser) != 0 {
		t.Error("no concession should be recorded")
	}
}

func TestApplyOpponentConcession(t *testing.T) {
	s := newTestSession(PersonaTrump)

	c, _ := ConcessionByKey(PersonaPutin, "inspections_access")
	if !s.ApplyOpponentConcession(c) {
		t.Fatal("expected opponent concession to apply")
	}
	if got := s.Scores[PersonaPutin]; got != 50-2 {
		t.Errorf("expected putin score 48, got %v", got)
	}
	if got := s.Scores[PersonaTrump]; got != 50+8 {
		t.Errorf("expected trump score 58, got %v", got)
	}

	if s.ApplyOpponentConcession(c) {
		t.Error("duplicate opponent concession should be a no-op")
	}
	if len(s.ConfirmedByOpponent) != 1 {
		t.Errorf("expected 1 confirmed opponent concession, got %d", len(s.ConfirmedByOpponent))
	}
}

func TestProjectedScoresNoPending(t *testing.T) {
	s := newTestSession(PersonaPutin)
	s.ApplyUserConcession("cyber_restraints")

	cur := s.CurrentScores()
	proj := s.ProjectedScores()
	for p, v := range cur {
		if proj[p] != v {
			t.Errorf("%s: projected %v != current %v with no pending offer", p, proj[p], v)
		}
	}
}

func TestProjectedScoresWithPending(t *testing.T) {
	s := newTestSession(PersonaTrump)
	pending, _ := ConcessionByKey(PersonaPutin, "prisoner_exchange")
	s.PendingOffer = &pending

	proj := s.ProjectedScores()
	if proj[PersonaPutin] != 50-3 {
		t.Errorf("expected projected putin 47, got %v", proj[PersonaPutin])
	}
	if proj[PersonaTrump] != 50+9 {
		t.Errorf("expected projected trump 59, got %v", proj[PersonaTrump])
	}

	// Projection must not mutate the ledger.
	if s.Scores[PersonaTrump] != 50 || s.Scores[PersonaPutin] != 50 {
		t.Errorf("projection mutated scores: %v", s.Scores)
	}

	// Once the offer actually confirms, the transfer happens exactly once.
	s.ApplyOpponentConcession(pending)
	s.PendingOffer = nil
	if s.Scores[PersonaTrump] != 59 || s.Scores[PersonaPutin] != 47 {
		t.Errorf("unexpected scores after confirm: %v", s.Scores)
	}
	proj = s.ProjectedScores()
	if proj[PersonaTrump] != 59 || proj[PersonaPutin] != 47 {
		t.Errorf("projection double-counted after confirm: %v", proj)
	}
}

func TestScoresUnclamped(t *testing.T) {
	s := newTestSession(PersonaTrump)
	s.Scores[PersonaTrump] = 1
	if _, ok := s.ApplyUserConcession("sanctions_easing"); !ok {
		t.Fatal("apply failed")
	}
	if s.Scores[PersonaTrump] != -3 {
		t.Errorf("engine must not clamp, expected -3, got %v", s.Scores[PersonaTrump])
	}
}

func TestAvailableConcessions(t *testing.T) {
	s := newTestSession(PersonaTrump)
	s.ApplyUserConcession("tariff_relief")

	avail := s.AvailableConcessions()
	if len(avail) != 4 {
		t.Fatalf("expected 4 available, got %d", len(avail))
	}
	for _, c := range avail {
		if c.Key == "tariff_relief" {
			t.Error("confirmed concession still listed as available")
		}
	}
}
