package domain

import (
	"time"

	"github.com/google/uuid"
)

type AdminStats struct {
	TotalUsers        int64   `json:"totalUsers"`
	TotalEvents       int64   `json:"totalEvents"`
	TotalInscriptions int64   `json:"totalInscriptions"`
	Revenue           float64 `json:"revenue"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type DayAmount struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type EventStats struct {
	EventID             uuid.UUID   `json:"eventId"`
	TotalRegistrations  int64       `json:"totalRegistrations"`
	ActiveRegistrations int64       `json:"activeRegistrations"`
	TotalRevenue        float64     `json:"totalRevenue"`
	CheckedInCount      int64       `json:"checkedInCount"`
	AverageRating       float64     `json:"averageRating"`
	TotalReviews        int64       `json:"totalReviews"`
	RegistrationsByDay  []DayCount  `json:"registrationsByDay"`
	RevenueByDay        []DayAmount `json:"revenueByDay"`
}

// AdminEvent is a row of the admin event listing.
type AdminEvent struct {
	ID              uuid.UUID    `json:"id"`
	Title           string       `json:"title"`
	StartDate       time.Time    `json:"startDate"`
	Status          EventStatus  `json:"status"`
	MaxParticipants int          `json:"maxParticipants"`
	Price           float64      `json:"price"`
	Organizer       *UserSummary `json:"organizer,omitempty"`
	Inscriptions    int64        `json:"inscriptions"`
	CreatedAt       time.Time    `json:"createdAt"`
}

type CheckInStatus string

const (
	CheckInSuccess          CheckInStatus = "SUCCESS"
	CheckInAlreadyCheckedIn CheckInStatus = "ALREADY_CHECKED_IN"
	CheckInInvalid          CheckInStatus = "INVALID"
)

type CheckInResult struct {
	EventID       uuid.UUID     `json:"eventId"`
	InscriptionID *uuid.UUID    `json:"inscriptionId,omitempty"`
	ScannedAt     time.Time     `json:"scannedAt"`
	ScannedBy     uuid.UUID     `json:"scannedBy"`
	Status        CheckInStatus `json:"status"`
}
