package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"talent-match/internal/domain/invitation"
	"talent-match/internal/repository"
	"talent-match/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationNotPending = errors.New("invitation already responded to")
	ErrNotInvitedCandidate  = errors.New("not the invited candidate")
	ErrInvalidDecision      = errors.New("invalid decision")
)

type InvitationUsecase interface {
	Respond(ctx context.Context, invitationID, responderID uuid.UUID, decision string) (invitation.Invitation, error)
}

type Invitations struct {
	invitations repository.InvitationRepository
	now         func() time.Time
	log         *log.Logger
}

func NewInvitationUsecase(invitations repository.InvitationRepository, logger *log.Logger) *Invitations {
	if logger == nil {
		logger = log.Default()
	}
	return &Invitations{invitations: invitations, now: time.Now, log: logger}
}

// Respond applies the candidate's accept/decline decision. The transition is
// validated on the loaded entity first, then persisted with a guarded update
// so a concurrent response cannot downgrade a terminal status.
func (u *Invitations) Respond(ctx context.Context, invitationID, responderID uuid.UUID, decision string) (invitation.Invitation, error) {
	if responderID == uuid.Nil {
		return invitation.Invitation{}, ErrUnauthorized
	}
	if invitationID == uuid.Nil {
		return invitation.Invitation{}, ErrInvitationNotFound
	}

	status, err := parseDecision(decision)
	if err != nil {
		return invitation.Invitation{}, err
	}

	inv, err := u.invitations.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return invitation.Invitation{}, ErrInvitationNotFound
		}
		u.log.Printf("invitation respond error | invitation_id=%s err=%v", invitationID, err)
		return invitation.Invitation{}, ErrInternal
	}

	if err := inv.Respond(responderID, status, u.now()); err != nil {
		switch {
		case errors.Is(err, invitation.ErrNotInvitee):
			return invitation.Invitation{}, ErrNotInvitedCandidate
		case errors.Is(err, invitation.ErrNotPending):
			return invitation.Invitation{}, ErrInvitationNotPending
		case errors.Is(err, invitation.ErrBadDecision):
			return invitation.Invitation{}, ErrInvalidDecision
		default:
			return invitation.Invitation{}, ErrInternal
		}
	}

	if err := u.invitations.MarkResponded(ctx, inv.ID, inv.Status, *inv.RespondedAt); err != nil {
		if errors.Is(err, repository.ErrNoRowsUpdated) {
			// Lost the race: someone responded between our read and write.
			return invitation.Invitation{}, ErrInvitationNotPending
		}
		u.log.Printf("invitation respond error | invitation_id=%s err=%v", invitationID, err)
		return invitation.Invitation{}, ErrInternal
	}

	ws.NotifyInvitationResponded(inv.ID, string(inv.Status))
	return inv, nil
}

func parseDecision(decision string) (invitation.Status, error) {
	switch invitation.Status(strings.ToLower(strings.TrimSpace(decision))) {
	case invitation.StatusAccepted:
		return invitation.StatusAccepted, nil
	case invitation.StatusDeclined:
		return invitation.StatusDeclined, nil
	default:
		return "", ErrInvalidDecision
	}
}

var _ InvitationUsecase = (*Invitations)(nil)
