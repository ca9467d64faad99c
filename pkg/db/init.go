package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AulaWare/aula-backend/config"
)

// InitialiseDatabase opens the configured database and migrates the schema.
// TranslateError is enabled so duplicate-key conflicts surface as
// gorm.ErrDuplicatedKey regardless of driver.
func InitialiseDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		dialector = sqlite.Open(cfg.Database.DSN)
	}

	database, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %s", err.Error())
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

// Migrate runs the schema migration for all models
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&UserProfile{},
		&Student{},
		&Teacher{},
		&Admin{},
		&TeacherCatalogEntry{},
		&Room{},
		&RoomMember{},
		&Message{},
		&Survey{},
		&SurveyQuestion{},
		&SurveyResponse{},
	)
}
