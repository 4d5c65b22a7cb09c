package database

import (
	"fmt"
	"log"

	"portfolio-content-be/internal/model"

	"gorm.io/gorm"
)

// postMigrationSQL runs after AutoMigrate; statements must be idempotent.
var postMigrationSQL = []string{
	`CREATE INDEX IF NOT EXISTS idx_contents_listing ON contents (kind, published_at DESC) WHERE deleted_at IS NULL AND published;`,
}

// Migrate brings the schema up to date. Missing pgcrypto and failing index
// statements are logged and skipped; a failing AutoMigrate is returned.
func Migrate(db *gorm.DB) error {
	// gen_random_uuid() lives in pgcrypto before Postgres 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	if err := db.AutoMigrate(&model.Content{}); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}
	return nil
}
