package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameExists = errors.New("category already exists")
)

type EventCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string
	Color       string
	Icon        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *EventCategory) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CategoryWithCount struct {
	EventCategory
	EventCount int64
}

type CategoryDAO struct {
	db *gorm.DB
}

func NewCategoryDAO(db *gorm.DB) *CategoryDAO {
	return &CategoryDAO{
		db: db,
	}
}

func (d *CategoryDAO) Insert(ctx context.Context, category EventCategory) (EventCategory, error) {
	result := d.db.WithContext(ctx).Create(&category)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "name") {
			return EventCategory{}, ErrCategoryNameExists
		}

		return EventCategory{}, result.Error
	}

	return category, nil
}

func (d *CategoryDAO) FindByID(ctx context.Context, id uuid.UUID) (EventCategory, error) {
	var category EventCategory

	result := d.db.WithContext(ctx).Where("id = ?", id).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventCategory{}, ErrCategoryNotFound
		}

		return EventCategory{}, result.Error
	}

	return category, nil
}

// FindByName matches the name case-insensitively.
func (d *CategoryDAO) FindByName(ctx context.Context, name string) (EventCategory, error) {
	var category EventCategory

	result := d.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(name)).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventCategory{}, ErrCategoryNotFound
		}

		return EventCategory{}, result.Error
	}

	return category, nil
}

// FindAllWithCounts lists categories by name with the number of published
// public events in each.
func (d *CategoryDAO) FindAllWithCounts(ctx context.Context) ([]CategoryWithCount, error) {
	var categories []EventCategory
	if err := d.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	counts, err := countGrouped(
		d.db.WithContext(ctx).Model(&Event{}).Where("status = ? AND is_public = ?", EventStatusPublished, true),
		"category_id",
	)
	if err != nil {
		return nil, err
	}

	rows := make([]CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, CategoryWithCount{EventCategory: c, EventCount: counts[c.ID]})
	}

	return rows, nil
}
