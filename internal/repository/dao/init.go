package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&EventCategory{},
		&Event{},
		&Inscription{},
		&EventReview{},
	)
}

// DropTables removes every table owned by the application, children first.
func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&EventReview{},
		&Inscription{},
		&Event{},
		&EventCategory{},
		&User{},
	)
}
