package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Role  string `gorm:"not null;default:PARTICIPANT"` // "ADMIN", "ORGANIZER" or "PARTICIPANT"
	Name  string `gorm:"not null"`
	Phone string
	CPF   string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserWithCounts is a user row plus the sizes of its owned collections.
type UserWithCounts struct {
	User
	OrganizedEvents int64
	Inscriptions    int64
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "email") {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindAllWithCounts lists users newest first together with the number of
// events they organize and inscriptions they hold.
func (d *UserDAO) FindAllWithCounts(ctx context.Context) ([]UserWithCounts, error) {
	var users []User
	if err := d.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	organized, err := countGrouped(d.db.WithContext(ctx).Model(&Event{}), "organizer_id")
	if err != nil {
		return nil, err
	}

	inscriptions, err := countGrouped(d.db.WithContext(ctx).Model(&Inscription{}), "participant_id")
	if err != nil {
		return nil, err
	}

	rows := make([]UserWithCounts, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserWithCounts{
			User:            u,
			OrganizedEvents: organized[u.ID],
			Inscriptions:    inscriptions[u.ID],
		})
	}

	return rows, nil
}

func (d *UserDAO) UpdateRole(ctx context.Context, id uuid.UUID, role string) (User, error) {
	var user User

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		user.Role = role
		return tx.Model(&user).Update("role", role).Error
	})
	if err != nil {
		return User{}, err
	}

	return user, nil
}

// DeleteCascade removes the user and everything that hangs off it in a single
// transaction: the user's inscriptions and reviews, the inscriptions and
// reviews of the events they organize, and those events.
func (d *UserDAO) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		organized := func() *gorm.DB {
			return tx.Model(&Event{}).Select("id").Where("organizer_id = ?", id)
		}

		if err := tx.Where("participant_id = ?", id).Delete(&Inscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id IN (?)", organized()).Delete(&Inscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR event_id IN (?)", id, organized()).Delete(&EventReview{}).Error; err != nil {
			return err
		}
		if err := tx.Where("organizer_id = ?", id).Delete(&Event{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&User{}).Error
	})
}

func (d *UserDAO) Count(ctx context.Context) (int64, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&User{}).Count(&n).Error

	return n, err
}
