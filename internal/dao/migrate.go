package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tokamp4/task-management-system-fork/internal/models"
)

// DefaultRoles are created by Migrate when missing.
var DefaultRoles = []string{models.RoleReviewer, models.RoleAdmin}

// Migrate creates or updates the schema and seeds the default roles.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Session{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, name := range DefaultRoles {
		role := models.Role{Name: name}
		if err = db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %q: %w", name, err)
		}
	}
	return nil
}
