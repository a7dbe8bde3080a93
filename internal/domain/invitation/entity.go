package invitation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

var (
	ErrNotPending  = errors.New("invitation is no longer pending")
	ErrNotInvitee  = errors.New("responder is not the invited candidate")
	ErrBadDecision = errors.New("decision must be accepted or declined")
)

type Invitation struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	CandidateID uuid.UUID
	EmployerID  uuid.UUID
	Status      Status
	Message     *string
	CreatedAt   time.Time
	RespondedAt *time.Time
}

func TerminalStatus(s Status) bool {
	return s == StatusAccepted || s == StatusDeclined
}

// Respond applies the candidate's decision. Transitions are single-shot:
// pending -> accepted|declined, nothing else. The entity is left untouched
// on any violation.
func (i *Invitation) Respond(responderID uuid.UUID, decision Status, at time.Time) error {
	if i == nil {
		return ErrNotPending
	}
	if !TerminalStatus(decision) {
		return ErrBadDecision
	}
	if i.CandidateID != responderID {
		return ErrNotInvitee
	}
	if i.Status != StatusPending {
		return ErrNotPending
	}

	at = at.UTC()
	i.Status = decision
	i.RespondedAt = &at
	return nil
}
