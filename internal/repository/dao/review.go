package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventReview struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	User      User      `gorm:"foreignKey:UserID"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time
}

func (r *EventReview) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type ReviewDAO struct {
	db *gorm.DB
}

func NewReviewDAO(db *gorm.DB) *ReviewDAO {
	return &ReviewDAO{
		db: db,
	}
}

func (d *ReviewDAO) Insert(ctx context.Context, review EventReview) (EventReview, error) {
	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(&review).Error; err != nil {
		return EventReview{}, err
	}

	return review, nil
}

func (d *ReviewDAO) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]EventReview, error) {
	var reviews []EventReview

	err := d.db.WithContext(ctx).Preload("User").Where("event_id = ?", eventID).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	return reviews, nil
}
