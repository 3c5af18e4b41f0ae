package database

import (
	"fmt"

	"gorm.io/gorm"

	"essaylab_backend/internal/models"
)

// SeedCatalog inserts the starter college/programme catalog when the
// colleges table is empty. Admins extend it through the CRUD endpoints.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.College{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count colleges: %w", err)
	}
	if count > 0 {
		return nil
	}

	catalog := []models.College{
		{
			Name:    "Harvard University",
			Country: "United States",
			Programmes: []models.Programme{
				{Name: "Economics", EnglishVariant: models.EnglishAmerican},
				{Name: "Computer Science", EnglishVariant: models.EnglishAmerican},
			},
		},
		{
			Name:    "Stanford University",
			Country: "United States",
			Programmes: []models.Programme{
				{Name: "Symbolic Systems", EnglishVariant: models.EnglishAmerican},
				{Name: "Engineering", EnglishVariant: models.EnglishAmerican},
			},
		},
		{
			Name:    "University of Oxford",
			Country: "United Kingdom",
			Programmes: []models.Programme{
				{Name: "Philosophy, Politics and Economics", EnglishVariant: models.EnglishBritish},
				{Name: "Mathematics", EnglishVariant: models.EnglishBritish},
			},
		},
		{
			Name:    "University of Cambridge",
			Country: "United Kingdom",
			Programmes: []models.Programme{
				{Name: "Natural Sciences", EnglishVariant: models.EnglishBritish},
			},
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range catalog {
			if err := tx.Create(&catalog[i]).Error; err != nil {
				return fmt.Errorf("seed college %s: %w", catalog[i].Name, err)
			}
		}
		return nil
	})
}
