package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEventNotFound = errors.New("event not found")

const EventStatusPublished = "PUBLISHED"

type Event struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title           string    `gorm:"not null"`
	Description     string    `gorm:"type:text;not null"`
	StartDate       time.Time `gorm:"not null;index"`
	EndDate         time.Time `gorm:"not null"`
	Location        string    `gorm:"not null"`
	Address         string
	Latitude        *float64
	Longitude       *float64
	MaxParticipants int     `gorm:"not null"`
	Price           float64 `gorm:"type:numeric(10,2);not null"`
	IsPublic        bool    `gorm:"not null"`
	Status          string  `gorm:"not null;default:PUBLISHED"` // "DRAFT", "PUBLISHED", "CANCELLED" or "COMPLETED"
	ImageURL        string

	OrganizerID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Organizer   User          `gorm:"foreignKey:OrganizerID"`
	CategoryID  uuid.UUID     `gorm:"type:uuid;not null;index"`
	Category    EventCategory `gorm:"foreignKey:CategoryID"`

	Inscriptions []Inscription `gorm:"foreignKey:EventID"`
	Reviews      []EventReview `gorm:"foreignKey:EventID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type EventFilter struct {
	Search      string
	Category    string
	Location    string
	StartFrom   *time.Time
	StartUntil  *time.Time
	OrganizerID *uuid.UUID
}

type RatingSummary struct {
	Average float64
	Count   int64
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(&event).Error; err != nil {
		return Event{}, err
	}

	return event, nil
}

// FindByID loads the event with its organizer, category, seat holding
// inscriptions and reviews.
func (d *EventDAO) FindByID(ctx context.Context, id uuid.UUID) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Category").
		Preload("Inscriptions", "status IN ?", seatHoldingStatuses).
		Preload("Inscriptions.Participant").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Reviews.User").
		Where("id = ?", id).
		First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindAll applies the filter and orders by start date. Without an organizer
// only published public events are returned.
func (d *EventDAO) FindAll(ctx context.Context, f EventFilter) ([]Event, error) {
	q := d.db.WithContext(ctx).Model(&Event{}).Preload("Organizer").Preload("Category")

	if f.OrganizerID != nil {
		q = q.Where("events.organizer_id = ?", *f.OrganizerID)
	} else {
		q = q.Where("events.status = ? AND events.is_public = ?", EventStatusPublished, true)
	}

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"(LOWER(events.title) LIKE ? OR LOWER(events.description) LIKE ? OR LOWER(events.location) LIKE ?)",
			like, like, like,
		)
	}

	if f.Category != "" {
		q = q.Joins("JOIN event_categories ON event_categories.id = events.category_id").
			Where("LOWER(event_categories.name) = ?", strings.ToLower(f.Category))
	}

	if f.Location != "" {
		q = q.Where("LOWER(events.location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}

	if f.StartFrom != nil {
		q = q.Where("events.start_date >= ?", *f.StartFrom)
	}

	if f.StartUntil != nil {
		q = q.Where("events.start_date <= ?", *f.StartUntil)
	}

	var events []Event
	if err := q.Order("events.start_date ASC").Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

// FindAllNewest lists every event with its organizer, newest first.
func (d *EventDAO) FindAllNewest(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := d.db.WithContext(ctx).Preload("Organizer").Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

// SeatCounts returns the number of seat holding inscriptions per event.
func (d *EventDAO) SeatCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]int64{}, nil
	}

	return countGrouped(
		d.db.WithContext(ctx).Model(&Inscription{}).Where("event_id IN ? AND status IN ?", ids, seatHoldingStatuses),
		"event_id",
	)
}

// InscriptionCounts returns the number of inscriptions per event regardless
// of status.
func (d *EventDAO) InscriptionCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]int64{}, nil
	}

	return countGrouped(d.db.WithContext(ctx).Model(&Inscription{}).Where("event_id IN ?", ids), "event_id")
}

func (d *EventDAO) RatingSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]RatingSummary, error) {
	summaries := make(map[uuid.UUID]RatingSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	var rows []struct {
		GroupKey uuid.UUID
		Average  float64
		N        int64
	}
	err := d.db.WithContext(ctx).Model(&EventReview{}).
		Select("event_id AS group_key, AVG(rating) AS average, COUNT(*) AS n").
		Where("event_id IN ?", ids).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		summaries[r.GroupKey] = RatingSummary{Average: r.Average, Count: r.N}
	}

	return summaries, nil
}

// Update locks the event row, hands the current state and the number of held
// seats to fn and persists what fn returns. Concurrent registrations for the
// same event wait for the lock, so the capacity fn sees cannot change under it.
func (d *EventDAO) Update(ctx context.Context, id uuid.UUID, fn func(current Event, seats int64) (Event, error)) (Event, error) {
	var updated Event

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockEvent(tx, id)
		if err != nil {
			return err
		}

		seats, err := countSeats(tx, id)
		if err != nil {
			return err
		}

		updated, err = fn(current, seats)
		if err != nil {
			return err
		}
		updated.ID = current.ID
		updated.CreatedAt = current.CreatedAt

		return tx.Omit(clause.Associations).Save(&updated).Error
	})
	if err != nil {
		return Event{}, err
	}

	return updated, nil
}

// Delete locks the event row and, if fn allows it, removes the event with its
// remaining inscriptions and reviews.
func (d *EventDAO) Delete(ctx context.Context, id uuid.UUID, fn func(current Event, seats int64) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockEvent(tx, id)
		if err != nil {
			return err
		}

		seats, err := countSeats(tx, id)
		if err != nil {
			return err
		}

		if err = fn(current, seats); err != nil {
			return err
		}

		if err = tx.Where("event_id = ?", id).Delete(&Inscription{}).Error; err != nil {
			return err
		}
		if err = tx.Where("event_id = ?", id).Delete(&EventReview{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&Event{}).Error
	})
}

func (d *EventDAO) Count(ctx context.Context) (int64, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&Event{}).Count(&n).Error

	return n, err
}

// lockEvent reads the event row with SELECT ... FOR UPDATE. SQLite has no row
// locks; there the single connection pool serialises transactions instead.
func lockEvent(tx *gorm.DB, id uuid.UUID) (Event, error) {
	var event Event

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}
		return Event{}, err
	}

	return event, nil
}

func countSeats(tx *gorm.DB, eventID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&Inscription{}).Where("event_id = ? AND status IN ?", eventID, seatHoldingStatuses).Count(&n).Error

	return n, err
}
