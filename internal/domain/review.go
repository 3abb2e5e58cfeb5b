package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type EventReview struct {
	ID        uuid.UUID    `json:"id"`
	EventID   uuid.UUID    `json:"eventId"`
	UserID    uuid.UUID    `json:"userId"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"createdAt"`
	User      *UserSummary `json:"user,omitempty"`
}
