package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInscriptionNotFound = errors.New("inscription not found")
	ErrInscriptionExists   = errors.New("inscription already exists")
)

const (
	InscriptionStatusActive    = "ACTIVE"
	InscriptionStatusConfirmed = "CONFIRMED"
	InscriptionStatusCancelled = "CANCELLED"
	InscriptionStatusCheckedIn = "CHECKED_IN"
)

var seatHoldingStatuses = []string{InscriptionStatusActive, InscriptionStatusCheckedIn}

type Inscription struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	ParticipantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inscriptions_participant_event"`
	Participant   User      `gorm:"foreignKey:ParticipantID"`
	EventID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inscriptions_participant_event;index"`
	Event         Event     `gorm:"foreignKey:EventID"`

	Status          string `gorm:"not null;index"`
	Paid            bool   `gorm:"not null"`
	PaymentStatus   string `gorm:"not null"`
	TicketCode      string `gorm:"uniqueIndex;not null"`
	InscriptionDate time.Time `gorm:"not null"`
	CheckedInAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *Inscription) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type InscriptionDAO struct {
	db *gorm.DB
}

func NewInscriptionDAO(db *gorm.DB) *InscriptionDAO {
	return &InscriptionDAO{
		db: db,
	}
}

// Register runs the whole registration under the event row lock: it counts
// the held seats, looks up the participant's existing row and lets fn decide
// what to store. An existing row is updated in place and keeps its id.
func (d *InscriptionDAO) Register(
	ctx context.Context,
	eventID, participantID uuid.UUID,
	fn func(event Event, seats int64, existing *Inscription) (Inscription, error),
) (Inscription, error) {
	var saved Inscription

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}

		seats, err := countSeats(tx, eventID)
		if err != nil {
			return err
		}

		var existing *Inscription
		var found Inscription
		err = tx.Where("participant_id = ? AND event_id = ?", participantID, eventID).First(&found).Error
		switch {
		case err == nil:
			existing = &found
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		saved, err = fn(event, seats, existing)
		if err != nil {
			return err
		}
		saved.EventID = eventID
		saved.ParticipantID = participantID

		if existing != nil {
			saved.ID = existing.ID
			saved.CreatedAt = existing.CreatedAt
			return tx.Omit(clause.Associations).Save(&saved).Error
		}

		if err = tx.Omit(clause.Associations).Create(&saved).Error; err != nil {
			if isUniqueViolation(err, "") {
				return ErrInscriptionExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Inscription{}, err
	}

	return saved, nil
}

// Cancel locks the inscription's event, lets fn mutate the row and saves it.
func (d *InscriptionDAO) Cancel(ctx context.Context, id uuid.UUID, fn func(event Event, ins *Inscription) error) (Inscription, error) {
	var ins Inscription

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&ins).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInscriptionNotFound
			}
			return err
		}

		event, err := lockEvent(tx, ins.EventID)
		if err != nil {
			return err
		}

		if err = fn(event, &ins); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Save(&ins).Error
	})
	if err != nil {
		return Inscription{}, err
	}

	return ins, nil
}

// CheckIn locks the event and looks the ticket up among its inscriptions.
// fn receives nil when the ticket does not belong to the event; a non-nil
// row is saved after fn returns.
func (d *InscriptionDAO) CheckIn(
	ctx context.Context,
	eventID uuid.UUID,
	ticketCode string,
	fn func(event Event, ins *Inscription) error,
) (*Inscription, error) {
	var ins *Inscription

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}

		var found Inscription
		err = tx.Where("event_id = ? AND ticket_code = ?", eventID, ticketCode).First(&found).Error
		switch {
		case err == nil:
			ins = &found
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err = fn(event, ins); err != nil {
			return err
		}

		if ins == nil {
			return nil
		}

		return tx.Omit(clause.Associations).Save(ins).Error
	})
	if err != nil {
		return nil, err
	}

	return ins, nil
}

func (d *InscriptionDAO) FindByID(ctx context.Context, id uuid.UUID) (Inscription, error) {
	var ins Inscription

	result := d.db.WithContext(ctx).Preload("Event").Where("id = ?", id).First(&ins)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Inscription{}, ErrInscriptionNotFound
		}

		return Inscription{}, result.Error
	}

	return ins, nil
}

// FindByParticipant lists the participant's inscriptions in the given
// statuses, newest first, with each event's category and organizer.
func (d *InscriptionDAO) FindByParticipant(ctx context.Context, participantID uuid.UUID, statuses []string) ([]Inscription, error) {
	var inscriptions []Inscription

	err := d.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.Category").
		Preload("Event.Organizer").
		Where("participant_id = ? AND status IN ?", participantID, statuses).
		Order("inscription_date DESC").
		Find(&inscriptions).Error
	if err != nil {
		return nil, err
	}

	return inscriptions, nil
}

func (d *InscriptionDAO) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]Inscription, error) {
	var inscriptions []Inscription

	err := d.db.WithContext(ctx).Where("event_id = ?", eventID).Order("inscription_date ASC").Find(&inscriptions).Error
	if err != nil {
		return nil, err
	}

	return inscriptions, nil
}

func (d *InscriptionDAO) CountByStatus(ctx context.Context, statuses ...string) (int64, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&Inscription{}).Where("status IN ?", statuses).Count(&n).Error

	return n, err
}

// Revenue sums the price of every priced event over its paid inscriptions
// that hold a seat.
func (d *InscriptionDAO) Revenue(ctx context.Context) (float64, error) {
	var revenue float64

	err := d.db.WithContext(ctx).Model(&Inscription{}).
		Select("COALESCE(SUM(events.price), 0)").
		Joins("JOIN events ON events.id = inscriptions.event_id").
		Where("inscriptions.status IN ? AND inscriptions.paid = ? AND events.price > 0", seatHoldingStatuses, true).
		Row().
		Scan(&revenue)

	return revenue, err
}
