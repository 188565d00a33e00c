package repository

import (
	"context"

	"github.com/freeeve/principled-summit/internal/model"
	"github.com/freeeve/principled-summit/pkg/negotiation"
)

// SessionStore holds each user's single live negotiation session. The
// in-memory store is authoritative; the Redis store is an optional
// drop-in replacement that survives process restarts. Find returns
// (nil, nil) when the user has no session.
type SessionStore interface {
	Save(ctx context.Context, userID string, s *negotiation.Session) error
	Find(ctx context.Context, userID string) (*negotiation.Session, error)
	Delete(ctx context.Context, userID string) error
}

// AgreementArchive records concluded agreements. It is write-mostly; the
// listing exists for the read-only history endpoint.
type AgreementArchive interface {
	Record(ctx context.Context, rec *model.AgreementRecord) error
	List(ctx context.Context, limit int) ([]model.AgreementRecord, error)
}
