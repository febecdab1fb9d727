package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/models"
)

// subcategoryService handles user-owned subcategories.
type subcategoryService struct {
	db *gorm.DB
}

// NewSubcategoryService creates a new SubcategoryServicer.
func NewSubcategoryService(db *gorm.DB) SubcategoryServicer {
	return &subcategoryService{db: db}
}

// ListSubcategories returns the user's subcategories with their parent
// category, ordered by name.
func (s *subcategoryService) ListSubcategories(userID string) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	if err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&subcategories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return subcategories, nil
}

// CreateSubcategory creates a subcategory under an existing category.
func (s *subcategoryService) CreateSubcategory(userID, name, categoryID string) (*models.Subcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" || categoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and categoryId are required")
	}

	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sub := &models.Subcategory{
		Name:       name,
		UserID:     userID,
		CategoryID: category.ID,
	}
	if err := s.db.Create(sub).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sub.Category = &category
	return sub, nil
}

// DeleteSubcategory deletes a subcategory. Transactions that referenced it
// keep existing with no subcategory.
func (s *subcategoryService) DeleteSubcategory(userID, subcategoryID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sub models.Subcategory
		if err := tx.Where("id = ? AND user_id = ?", subcategoryID, userID).First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrSubcategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&models.Transaction{}).
			Where("subcategory_id = ? AND user_id = ?", sub.ID, userID).
			Update("subcategory_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(&sub).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// SubcategoryIDs lists the ids of the user's subcategories under the given
// categories.
func (s *subcategoryService) SubcategoryIDs(userID string, categoryIDs []string) ([]string, error) {
	var ids []string
	if len(categoryIDs) == 0 {
		return ids, nil
	}
	if err := s.db.Model(&models.Subcategory{}).
		Where("user_id = ? AND category_id IN ?", userID, categoryIDs).
		Order("name ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ownedSubcategory loads a subcategory only if userID owns it. Missing and
// foreign subcategories are reported alike.
func ownedSubcategory(db *gorm.DB, userID, subcategoryID string) (*models.Subcategory, error) {
	var sub models.Subcategory
	if err := db.Where("id = ? AND user_id = ?", subcategoryID, userID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubcategoryNotOwned
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &sub, nil
}
