package repository

import (
	"context"

	"talent-match/internal/database"

	"github.com/google/uuid"
)

// SubscriberRepository exposes the eligibility projection: subscribers whose
// subscription is active and who confirmed their daily job-search check-in.
type SubscriberRepository interface {
	ListEligibleIDs(ctx context.Context) ([]uuid.UUID, error)
}

type PostgresSubscriberRepository struct {
	db database.DB
}

func NewPostgresSubscriberRepository(db database.DB) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{db: db}
}

func (r *PostgresSubscriberRepository) ListEligibleIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id
		 FROM subscribers
		 WHERE subscription_active = TRUE
		   AND daily_checkin_confirmed_at >= date_trunc('day', now())
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
