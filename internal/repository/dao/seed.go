package dao

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	name, email, password, role string
}

var (
	seedUsers = []seedUser{
		{"Admin Sistema", "admin@test.com", "Admin@123", "ADMIN"},
		{"João Organizador", "org@test.com", "Organizer@123", "ORGANIZER"},
		{"Maria Participante", "user@test.com", "User@1234", "PARTICIPANT"},
	}

	seedCategories = []EventCategory{
		{Name: "Tecnologia", Description: "Eventos relacionados a tecnologia e inovação", Color: "#3B82F6", Icon: "tech"},
		{Name: "Negócios", Description: "Eventos sobre empreendedorismo e negócios", Color: "#10B981", Icon: "business"},
		{Name: "Educação", Description: "Workshops e cursos educacionais", Color: "#F59E0B", Icon: "education"},
		{Name: "Networking", Description: "Eventos para networking e relacionamento", Color: "#8B5CF6", Icon: "networking"},
	}
)

// Seed inserts the demo users and the default categories. It does nothing if
// any user already exists.
func Seed(ctx context.Context, db *gorm.DB) error {
	var users int64
	if err := db.WithContext(ctx).Model(&User{}).Count(&users).Error; err != nil {
		return fmt.Errorf("count users -> %w", err)
	}
	if users > 0 {
		zap.L().Info("database already seeded, skipping")
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, su := range seedUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			u := User{Name: su.name, Email: su.email, Password: string(hash), Role: su.role}
			if err = tx.Create(&u).Error; err != nil {
				return fmt.Errorf("create user %s -> %w", su.email, err)
			}
		}

		for _, c := range seedCategories {
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("create category %s -> %w", c.Name, err)
			}
		}

		zap.L().Info("database seeded",
			zap.Int("users", len(seedUsers)),
			zap.Int("categories", len(seedCategories)),
		)

		return nil
	})
}
