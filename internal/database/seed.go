package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fintracker/internal/models"
)

// SeedCategories inserts the fixed category set. Existing names are left
// untouched, so it is safe to run on every start.
func SeedCategories(db *gorm.DB) error {
	categories := models.DefaultCategories()
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&categories).Error
}
