package dto

import (
	"time"

	"github.com/google/uuid"
)

type PowerMatchResponse struct {
	ID            uuid.UUID  `json:"id"`
	SubscriberID  uuid.UUID  `json:"subscriber_id"`
	JobID         uuid.UUID  `json:"job_id"`
	State         string     `json:"state"`
	MatchScore    *float64   `json:"match_score,omitempty"`
	ApplicationID *uuid.UUID `json:"application_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ViewedAt      *time.Time `json:"viewed_at,omitempty"`
	AppliedAt     *time.Time `json:"applied_at,omitempty"`
}
