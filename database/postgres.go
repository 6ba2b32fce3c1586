package database

import (
	"fmt"
	"log"

	"community-service/config"
	"community-service/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresConnect opens the Postgres connection and migrates the schema.
// The handle is returned to the caller and injected into the controllers.
func PostgresConnect() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.Config("POSTGRES_HOST"),
		config.Config("POSTGRES_PORT"),
		config.Config("POSTGRES_USER"),
		config.Config("POSTGRES_PASSWORD"),
		config.Config("POSTGRES_DB"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}
	log.Printf("Connection opened to Postgres")

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Printf("Postgres Database Migrated")

	return db, nil
}

// Migrate creates or updates the schema. Shared with the test suite, which
// runs it against an in-memory SQLite database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.MessageRequest{},
		&model.Message{},
		&model.Note{},
		&model.Paper{},
		&model.Skill{},
		&model.ForumPost{},
	)
}
