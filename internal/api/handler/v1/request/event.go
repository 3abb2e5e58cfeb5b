package request

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
)

var eventStatuses = []interface{}{
	string(domain.EventDraft),
	string(domain.EventPublished),
	string(domain.EventCancelled),
	string(domain.EventCompleted),
}

type CreateEventRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Location        string    `json:"location"`
	Address         string    `json:"address,omitempty"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	MaxParticipants int       `json:"maxParticipants"`
	Price           *float64  `json:"price,omitempty"`
	IsPublic        *bool     `json:"isPublic,omitempty"`
	Status          string    `json:"status,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	CategoryID      string    `json:"categoryId"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.MaxParticipants, validation.Required, validation.Min(1)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.Status, validation.In(eventStatuses...)),
		validation.Field(&req.ImageURL, is.URL),
		validation.Field(&req.CategoryID, validation.Required, isUUID),
	)
}

// Event converts a validated request. Events are public and free unless the
// request says otherwise.
func (req *CreateEventRequest) Event() domain.Event {
	event := domain.Event{
		Title:           req.Title,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Location:        req.Location,
		Address:         req.Address,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		MaxParticipants: req.MaxParticipants,
		IsPublic:        true,
		Status:          domain.EventStatus(req.Status),
		ImageURL:        req.ImageURL,
		CategoryID:      uuid.MustParse(req.CategoryID),
	}

	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.IsPublic != nil {
		event.IsPublic = *req.IsPublic
	}

	return event
}

type UpdateEventRequest struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Location        *string    `json:"location,omitempty"`
	Address         *string    `json:"address,omitempty"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	MaxParticipants *int       `json:"maxParticipants,omitempty"`
	Price           *float64   `json:"price,omitempty"`
	IsPublic        *bool      `json:"isPublic,omitempty"`
	Status          *string    `json:"status,omitempty"`
	ImageURL        *string    `json:"imageUrl,omitempty"`
	CategoryID      *string    `json:"categoryId,omitempty"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&req.Location, validation.NilOrNotEmpty),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.MaxParticipants, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.Status, validation.In(eventStatuses...)),
		validation.Field(&req.ImageURL, is.URL),
		validation.Field(&req.CategoryID, validation.NilOrNotEmpty, isUUID),
	)
}

func (req *UpdateEventRequest) Update() domain.EventUpdate {
	update := domain.EventUpdate{
		Title:           req.Title,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Location:        req.Location,
		Address:         req.Address,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		MaxParticipants: req.MaxParticipants,
		Price:           req.Price,
		IsPublic:        req.IsPublic,
		ImageURL:        req.ImageURL,
	}

	if req.Status != nil {
		status := domain.EventStatus(*req.Status)
		update.Status = &status
	}
	if req.CategoryID != nil {
		id := uuid.MustParse(*req.CategoryID)
		update.CategoryID = &id
	}

	return update
}

// ListEventsQuery holds the catalog filters. Dates accept RFC 3339 or
// YYYY-MM-DD.
type ListEventsQuery struct {
	Search      string `form:"search"`
	Category    string `form:"category"`
	Location    string `form:"location"`
	StartDate   string `form:"startDate"`
	EndDate     string `form:"endDate"`
	OrganizerID string `form:"organizerId"`
}

func (q *ListEventsQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.StartDate, validation.By(isDate)),
		validation.Field(&q.EndDate, validation.By(isDate)),
		validation.Field(&q.OrganizerID, isUUID),
	)
}

func (q *ListEventsQuery) Filter() domain.EventFilter {
	filter := domain.EventFilter{
		Search:   q.Search,
		Category: q.Category,
		Location: q.Location,
	}

	if t, err := parseDate(q.StartDate); err == nil {
		filter.StartFrom = &t
	}
	if t, err := parseDate(q.EndDate); err == nil {
		filter.StartUntil = &t
	}
	if id, err := uuid.Parse(q.OrganizerID); err == nil {
		filter.OrganizerID = &id
	}

	return filter
}

var errInvalidDate = errors.New("must be a RFC 3339 timestamp or a YYYY-MM-DD date")

func isDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := parseDate(s); err != nil {
		return errInvalidDate
	}

	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errInvalidDate
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.Parse -> %w", err)
	}

	return t, nil
}
