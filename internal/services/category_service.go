package services

import (
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/models"
)

// categoryService serves the fixed, process-wide category set.
type categoryService struct {
	db *gorm.DB

	mu         sync.RWMutex
	fallbackID string
	lookups    singleflight.Group
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns every category ordered by name.
func (s *categoryService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID returns a single category.
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// FallbackCategoryID returns the id of the catch-all category, or "" when
// none is seeded. A found id is cached for the life of the process and
// concurrent first lookups share one query.
func (s *categoryService) FallbackCategoryID() (string, error) {
	s.mu.RLock()
	id := s.fallbackID
	s.mu.RUnlock()
	if id != "" {
		return id, nil
	}

	v, err, _ := s.lookups.Do("fallback", func() (interface{}, error) {
		var category models.Category
		err := s.db.Where("is_fallback = ?", true).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		if err != nil {
			return "", err
		}

		s.mu.Lock()
		s.fallbackID = category.ID
		s.mu.Unlock()
		return category.ID, nil
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return v.(string), nil
}
