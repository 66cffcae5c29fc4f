package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vairleon/ai-web-core/internal/infrastructure/repositories"
)

// Open creates a new database connection.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// AutoMigrate creates or updates the user and authority tables. The casbin
// policy table is created by the adapter when the enforcer is built. The
// credit and extra_info columns also ship as a reversible SQL migration
// under db/migrations for managed environments.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBUser{}, &repositories.DBAuthority{}); err != nil {
		return fmt.Errorf("failed to migrate user tables: %w", err)
	}
	return nil
}
