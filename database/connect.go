package database

import (
	"fmt"
	"time"

	"event_planner/config"
	"event_planner/model"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the PostgreSQL pool and migrates the schema.
func ConnectDB(settings config.DBSettings, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(settings.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info().Str("host", settings.Host).Str("db", settings.Name).Msg("connection opened to database")

	err = db.AutoMigrate(
		&model.User{},
		&model.PasswordResetCode{},
		&model.Event{},
		&model.Guest{},
		&model.GalleryItem{},
		&model.Message{},
		&model.Notification{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Info().Msg("database migrated")

	return db, nil
}
