package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/freeeve/principled-summit/internal/model"
)

// AgreementRepo archives concluded agreements.
type AgreementRepo struct {
	db *sql.DB
}

// NewAgreementRepo creates an AgreementRepo.
func NewAgreementRepo(db *sql.DB) *AgreementRepo {
	return &AgreementRepo{db: db}
}

// Record inserts a concluded agreement.
func (r *AgreementRepo) Record(ctx context.Context, rec *model.AgreementRecord) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO agreements (user_id, persona, user_score, opponent_score, user_concessions, opponent_concessions, agreement_text, concluded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		rec.UserID, rec.Persona, rec.UserScore, rec.OpponentScore,
		pq.Array(rec.UserConcessions), pq.Array(rec.OpponentConcessions),
		rec.AgreementText, rec.ConcludedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("record agreement: %w", err)
	}
	return nil
}

// List returns the most recently concluded agreements.
func (r *AgreementRepo) List(ctx context.Context, limit int) ([]model.AgreementRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, persona, user_score, opponent_score, user_concessions, opponent_concessions, agreement_text, concluded_at
		 FROM agreements ORDER BY concluded_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list agreements: %w", err)
	}
	defer rows.Close()

	var records []model.AgreementRecord
	for rows.Next() {
		var rec model.AgreementRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Persona, &rec.UserScore, &rec.OpponentScore,
			pq.Array(&rec.UserConcessions), pq.Array(&rec.OpponentConcessions),
			&rec.AgreementText, &rec.ConcludedAt); err != nil {
			return nil, fmt.Errorf("scan agreement: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
