package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPublished EventStatus = "PUBLISHED"
	EventCancelled EventStatus = "CANCELLED"
	EventCompleted EventStatus = "COMPLETED"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventDraft, EventPublished, EventCancelled, EventCompleted:
		return true
	}
	return false
}

type Event struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	StartDate       time.Time   `json:"startDate"`
	EndDate         time.Time   `json:"endDate"`
	Location        string      `json:"location"`
	Address         string      `json:"address,omitempty"`
	Latitude        *float64    `json:"latitude"`
	Longitude       *float64    `json:"longitude"`
	MaxParticipants int         `json:"maxParticipants"`
	Price           float64     `json:"price"`
	IsPublic        bool        `json:"isPublic"`
	Status          EventStatus `json:"status"`
	ImageURL        string      `json:"imageUrl,omitempty"`
	OrganizerID     uuid.UUID   `json:"organizerId"`
	CategoryID      uuid.UUID   `json:"categoryId"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`

	Category           *EventCategory `json:"category,omitempty"`
	Organizer          *UserSummary   `json:"organizer,omitempty"`
	ActiveInscriptions int64          `json:"activeInscriptions"`
	AvailableSpots     int64          `json:"availableSpots"`
	AverageRating      float64        `json:"averageRating"`
	TotalReviews       int64          `json:"totalReviews"`
	Inscriptions       []Inscription  `json:"inscriptions,omitempty"`
	Reviews            []EventReview  `json:"reviews,omitempty"`
}

func (e Event) IsFree() bool {
	return e.Price <= 0
}

func (e Event) HasStarted(now time.Time) bool {
	return e.StartDate.Before(now)
}

// WithSeats fills the derived seat counters from the number of held seats.
func (e Event) WithSeats(held int64) Event {
	e.ActiveInscriptions = held
	e.AvailableSpots = int64(e.MaxParticipants) - held
	if e.AvailableSpots < 0 {
		e.AvailableSpots = 0
	}
	return e
}

// EventFilter narrows the catalog listing. Zero values are ignored.
type EventFilter struct {
	Search      string
	Category    string
	Location    string
	StartFrom   *time.Time
	StartUntil  *time.Time
	OrganizerID *uuid.UUID
}

// EventUpdate carries a partial update; nil fields are left untouched.
type EventUpdate struct {
	Title           *string
	Description     *string
	StartDate       *time.Time
	EndDate         *time.Time
	Location        *string
	Address         *string
	Latitude        *float64
	Longitude       *float64
	MaxParticipants *int
	Price           *float64
	IsPublic        *bool
	Status          *EventStatus
	ImageURL        *string
	CategoryID      *uuid.UUID
}

// Apply merges the update into e.
func (u EventUpdate) Apply(e *Event) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.StartDate != nil {
		e.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		e.EndDate = *u.EndDate
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.Address != nil {
		e.Address = *u.Address
	}
	if u.Latitude != nil {
		e.Latitude = u.Latitude
	}
	if u.Longitude != nil {
		e.Longitude = u.Longitude
	}
	if u.MaxParticipants != nil {
		e.MaxParticipants = *u.MaxParticipants
	}
	if u.Price != nil {
		e.Price = *u.Price
	}
	if u.IsPublic != nil {
		e.IsPublic = *u.IsPublic
	}
	if u.Status != nil {
		e.Status = *u.Status
	}
	if u.ImageURL != nil {
		e.ImageURL = *u.ImageURL
	}
	if u.CategoryID != nil {
		e.CategoryID = *u.CategoryID
	}
}
