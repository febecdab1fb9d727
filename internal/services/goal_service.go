package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/models"
)

// goalService handles savings goals. Progress is entered manually and is
// never derived from transactions.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a goal. A nil current amount starts at zero.
func (s *goalService) CreateGoal(
	userID, title string,
	target decimal.Decimal,
	current *decimal.Decimal,
	deadline *time.Time,
) (*models.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}

	goal := &models.Goal{
		UserID:        userID,
		Title:         title,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
	}
	if current != nil {
		goal.CurrentAmount = *current
	}
	if deadline != nil {
		d := models.CalendarDate(*deadline)
		goal.Deadline = &d
	}
	if err := validateGoalAmounts(goal.TargetAmount, goal.CurrentAmount); err != nil {
		return nil, err
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals returns the user's goals, nearest deadline first. Goals
// without a deadline come last.
func (s *goalService) GetUserGoals(userID string) ([]models.Goal, error) {
	goals := []models.Goal{}
	if err := s.db.Where("user_id = ?", userID).
		Order("deadline IS NULL").
		Order("deadline ASC").
		Order("created_at ASC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// UpdateGoal updates a goal's fields.
func (s *goalService) UpdateGoal(userID, goalID string, update GoalUpdate) (*models.Goal, error) {
	goal, err := s.findOwned(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
		}
		updates["title"] = title
		goal.Title = title
	}
	if update.TargetAmount != nil {
		updates["target_amount"] = *update.TargetAmount
		goal.TargetAmount = *update.TargetAmount
	}
	if update.CurrentAmount != nil {
		updates["current_amount"] = *update.CurrentAmount
		goal.CurrentAmount = *update.CurrentAmount
	}
	if update.Deadline != nil {
		d := models.CalendarDate(*update.Deadline)
		updates["deadline"] = d
		goal.Deadline = &d
	}
	if err := validateGoalAmounts(goal.TargetAmount, goal.CurrentAmount); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Goal{}).Where("id = ?", goal.ID).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return goal, nil
}

// DeleteGoal deletes a goal.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	result := s.db.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

func (s *goalService) findOwned(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

func validateGoalAmounts(target, current decimal.Decimal) error {
	if !target.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if current.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "current amount cannot be negative")
	}
	return nil
}
