package repository

import (
	"context"
	"errors"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/invitation"

	"github.com/google/uuid"
)

var ErrInvitationNotFound = errors.New("invitation not found")

type InvitationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (invitation.Invitation, error)
	// MarkResponded stamps the terminal status and responded_at in one
	// guarded update; it fails with ErrNoRowsUpdated when the row is no
	// longer pending.
	MarkResponded(ctx context.Context, id uuid.UUID, status invitation.Status, respondedAt time.Time) error
}

type PostgresInvitationRepository struct {
	db database.DB
}

func NewPostgresInvitationRepository(db database.DB) *PostgresInvitationRepository {
	return &PostgresInvitationRepository{db: db}
}

func (r *PostgresInvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (invitation.Invitation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, candidate_id, employer_id, status, message, created_at, responded_at
		 FROM candidate_invitations
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return invitation.Invitation{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return invitation.Invitation{}, err
		}
		return invitation.Invitation{}, ErrInvitationNotFound
	}

	var inv invitation.Invitation
	var status string
	if err := rows.Scan(
		&inv.ID, &inv.JobID, &inv.CandidateID, &inv.EmployerID,
		&status, &inv.Message, &inv.CreatedAt, &inv.RespondedAt,
	); err != nil {
		return invitation.Invitation{}, err
	}
	inv.Status = invitation.Status(status)
	return inv, nil
}

func (r *PostgresInvitationRepository) MarkResponded(ctx context.Context, id uuid.UUID, status invitation.Status, respondedAt time.Time) error {
	if !invitation.TerminalStatus(status) {
		return invitation.ErrBadDecision
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE candidate_invitations
		 SET status = $1, responded_at = $2
		 WHERE id = $3 AND status = $4`,
		string(status), respondedAt.UTC(), id, string(invitation.StatusPending),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}

var _ InvitationRepository = (*PostgresInvitationRepository)(nil)
