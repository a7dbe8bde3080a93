package dto

import (
	"time"

	"github.com/google/uuid"
)

type InvitationResponse struct {
	ID          uuid.UUID  `json:"id"`
	JobID       uuid.UUID  `json:"job_id"`
	CandidateID uuid.UUID  `json:"candidate_id"`
	EmployerID  uuid.UUID  `json:"employer_id"`
	Status      string     `json:"status"`
	Message     *string    `json:"message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}
