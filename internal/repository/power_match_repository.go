package repository

import (
	"context"
	"errors"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/powermatch"

	"github.com/google/uuid"
)

var ErrNoRowsUpdated = errors.New("no rows updated")

type PowerMatchRepository interface {
	Insert(ctx context.Context, m powermatch.PowerMatch) error
	FindByID(ctx context.Context, id uuid.UUID) (powermatch.PowerMatch, error)
	ListAutoApplyCandidates(ctx context.Context, limit int) ([]powermatch.PowerMatch, error)
	MarkApplied(ctx context.Context, id uuid.UUID, applicationID uuid.UUID, score *float64, appliedAt time.Time) error
	MarkViewed(ctx context.Context, id uuid.UUID, subscriberID uuid.UUID, viewedAt time.Time) error
}

var ErrPowerMatchNotFound = errors.New("power match not found")

type PostgresPowerMatchRepository struct {
	db database.DB
}

func NewPostgresPowerMatchRepository(db database.DB) *PostgresPowerMatchRepository {
	return &PostgresPowerMatchRepository{db: db}
}

func (r *PostgresPowerMatchRepository) Insert(ctx context.Context, m powermatch.PowerMatch) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.State == "" {
		m.State = powermatch.StateGenerated
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO power_matches (id, subscriber_id, job_id, state, match_score, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (subscriber_id, job_id) DO NOTHING`,
		m.ID, m.SubscriberID, m.JobID, string(m.State), m.MatchScore, m.CreatedAt,
	)
	return err
}

func (r *PostgresPowerMatchRepository) FindByID(ctx context.Context, id uuid.UUID) (powermatch.PowerMatch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, subscriber_id, job_id, state, match_score, application_id, created_at, viewed_at, applied_at
		 FROM power_matches
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return powermatch.PowerMatch{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return powermatch.PowerMatch{}, err
		}
		return powermatch.PowerMatch{}, ErrPowerMatchNotFound
	}
	return scanPowerMatch(rows)
}

// ListAutoApplyCandidates selects unresolved matches only: state=generated
// means the subscriber has neither viewed nor applied. Already-applied rows
// are never re-selected, which makes re-runs idempotent.
func (r *PostgresPowerMatchRepository) ListAutoApplyCandidates(ctx context.Context, limit int) ([]powermatch.PowerMatch, error) {
	if limit <= 0 {
		limit = 500
	}
	if limit > 5000 {
		limit = 5000
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, subscriber_id, job_id, state, match_score, application_id, created_at, viewed_at, applied_at
		 FROM power_matches
		 WHERE state = $1
		 ORDER BY created_at ASC
		 LIMIT $2`,
		string(powermatch.StateGenerated), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]powermatch.PowerMatch, 0)
	for rows.Next() {
		m, err := scanPowerMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkApplied links the match to its application in a single guarded update.
// The state guard keeps applied terminal even if two runs race on the same
// row.
func (r *PostgresPowerMatchRepository) MarkApplied(ctx context.Context, id uuid.UUID, applicationID uuid.UUID, score *float64, appliedAt time.Time) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE power_matches
		 SET state = $1, application_id = $2, match_score = $3, applied_at = $4
		 WHERE id = $5 AND state <> $1`,
		string(powermatch.StateApplied), applicationID, score, appliedAt.UTC(), id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}

func (r *PostgresPowerMatchRepository) MarkViewed(ctx context.Context, id uuid.UUID, subscriberID uuid.UUID, viewedAt time.Time) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE power_matches
		 SET state = $1, viewed_at = $2
		 WHERE id = $3 AND subscriber_id = $4 AND state = $5`,
		string(powermatch.StateViewed), viewedAt.UTC(), id, subscriberID, string(powermatch.StateGenerated),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanPowerMatch(row scannable) (powermatch.PowerMatch, error) {
	var m powermatch.PowerMatch
	var state string
	if err := row.Scan(
		&m.ID, &m.SubscriberID, &m.JobID, &state, &m.MatchScore,
		&m.ApplicationID, &m.CreatedAt, &m.ViewedAt, &m.AppliedAt,
	); err != nil {
		return powermatch.PowerMatch{}, err
	}
	m.State = powermatch.State(state)
	return m, nil
}

var _ PowerMatchRepository = (*PostgresPowerMatchRepository)(nil)
