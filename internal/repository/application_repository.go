package repository

import (
	"context"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Insert(ctx context.Context, a application.Application) error
	ExistsForSubscriberJob(ctx context.Context, subscriberID, jobID uuid.UUID) (bool, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Insert(ctx context.Context, a application.Application) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, subscriber_id, job_id, status, stage, cover_letter, match_score, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.SubscriberID, a.JobID, a.Status, string(a.Stage), a.CoverLetter, a.MatchScore, a.CreatedAt,
	)
	return err
}

func (r *PostgresApplicationRepository) ExistsForSubscriberJob(ctx context.Context, subscriberID, jobID uuid.UUID) (bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM applications WHERE subscriber_id = $1 AND job_id = $2
		 )`,
		subscriberID, jobID,
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var _ ApplicationRepository = (*PostgresApplicationRepository)(nil)
