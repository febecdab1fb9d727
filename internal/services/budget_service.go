package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/logger"
	"fintracker/internal/models"
)

// budgetService handles budget-related business logic. A budget stores the
// category by name; its spend is aggregated on every read.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a monthly budget for a category.
func (s *budgetService) CreateBudget(
	userID, category string,
	limit decimal.Decimal,
	month, year int,
) (*models.Budget, error) {
	category = strings.TrimSpace(category)
	if err := validateBudget(category, limit, month, year); err != nil {
		return nil, err
	}
	if err := s.ensureCategoryExists(category); err != nil {
		return nil, err
	}
	if err := s.ensureUniquePeriod(userID, category, month, year, ""); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Limit:    limit,
		Month:    month,
		Year:     year,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, budgetWriteError(err)
	}

	if err := s.attachSpend(budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// GetUserBudgets returns the user's budgets, optionally restricted to a
// month and/or year, each with its current spend.
func (s *budgetService) GetUserBudgets(userID string, month, year *int) ([]models.Budget, error) {
	query := s.db.Where("user_id = ?", userID)
	if month != nil {
		query = query.Where("month = ?", *month)
	}
	if year != nil {
		query = query.Where("year = ?", *year)
	}

	budgets := []models.Budget{}
	if err := query.
		Order("year DESC").
		Order("month DESC").
		Order("category ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range budgets {
		if err := s.attachSpend(&budgets[i]); err != nil {
			return nil, err
		}
	}
	return budgets, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	budget, err := s.findOwned(userID, budgetID)
	if err != nil {
		return nil, err
	}
	if err := s.attachSpend(budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// UpdateBudget updates an existing budget's fields.
func (s *budgetService) UpdateBudget(userID, budgetID string, update BudgetUpdate) (*models.Budget, error) {
	budget, err := s.findOwned(userID, budgetID)
	if err != nil {
		return nil, err
	}

	category, limit, month, year := budget.Category, budget.Limit, budget.Month, budget.Year
	if update.Category != nil {
		category = strings.TrimSpace(*update.Category)
	}
	if update.Limit != nil {
		limit = *update.Limit
	}
	if update.Month != nil {
		month = *update.Month
	}
	if update.Year != nil {
		year = *update.Year
	}

	if err := validateBudget(category, limit, month, year); err != nil {
		return nil, err
	}
	if category != budget.Category {
		if err := s.ensureCategoryExists(category); err != nil {
			return nil, err
		}
	}
	if category != budget.Category || month != budget.Month || year != budget.Year {
		if err := s.ensureUniquePeriod(userID, category, month, year, budget.ID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{
		"category":     category,
		"limit_amount": limit,
		"month":        month,
		"year":         year,
	}
	if err := s.db.Model(budget).Updates(updates).Error; err != nil {
		return nil, budgetWriteError(err)
	}
	budget.Category, budget.Limit, budget.Month, budget.Year = category, limit, month, year

	if err := s.attachSpend(budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// DeleteBudget deletes a budget.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.findOwned(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *budgetService) findOwned(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

func (s *budgetService) attachSpend(budget *models.Budget) error {
	spend, err := s.currentSpend(budget)
	if err != nil {
		return err
	}
	budget.CurrentSpend = spend
	return nil
}

// currentSpend sums the user's expenses in the budget's month whose
// subcategory belongs to the budget's category. A category name that no
// longer resolves yields zero.
func (s *budgetService) currentSpend(budget *models.Budget) (decimal.Decimal, error) {
	var category models.Category
	if err := s.db.Where("name = ?", budget.Category).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Get().Warnw("Budget category not found, reporting zero spend",
				"budget_id", budget.ID, "category", budget.Category)
			return decimal.Zero, nil
		}
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var subcategoryIDs []string
	if err := s.db.Model(&models.Subcategory{}).
		Where("user_id = ? AND category_id = ?", budget.UserID, category.ID).
		Pluck("id", &subcategoryIDs).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(subcategoryIDs) == 0 {
		logger.Get().Debugw("No subcategories for budget category",
			"budget_id", budget.ID, "category", budget.Category)
		return decimal.Zero, nil
	}

	start, end := monthWindow(budget.Month, budget.Year)

	var spent decimal.NullDecimal
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND subcategory_id IN ? AND date BETWEEN ? AND ?",
			budget.UserID, models.TransactionTypeExpense, subcategoryIDs, start, end).
		Row().Scan(&spent)
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !spent.Valid {
		return decimal.Zero, nil
	}
	return spent.Decimal, nil
}

func (s *budgetService) ensureCategoryExists(name string) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func (s *budgetService) ensureUniquePeriod(userID, category string, month, year int, excludeID string) error {
	query := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND category = ? AND month = ? AND year = ?", userID, category, month, year)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateBudget
	}
	return nil
}

func validateBudget(category string, limit decimal.Decimal, month, year int) error {
	if category == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if !limit.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be greater than zero")
	}
	if month < 1 || month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if year < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be positive")
	}
	return nil
}

// monthWindow returns the first and last instant of a calendar month.
func monthWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// budgetWriteError maps a unique index violation on the budget period to
// ErrDuplicateBudget. The index backs ensureUniquePeriod when two writers
// race past the check.
func budgetWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrDuplicateBudget
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
