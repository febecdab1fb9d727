package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/filter"
	"fintracker/internal/models"
	"fintracker/internal/recurrence"
)

// transactionService handles transaction-related business logic: single and
// fixed-series creation, scoped updates and deletes, and filtered queries.
type transactionService struct {
	db            *gorm.DB
	categories    CategoryServicer
	subcategories SubcategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categories CategoryServicer, subcategories SubcategoryServicer) TransactionServicer {
	return &transactionService{
		db:            db,
		categories:    categories,
		subcategories: subcategories,
	}
}

// CreateTransaction creates one row for a single transaction, or the whole
// monthly series for a fixed one. A series is inserted as one batch inside
// one database transaction, so either every installment persists or none do.
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) ([]models.Transaction, error) {
	if err := validateTransactionFields(&input.Type, &input.Amount); err != nil {
		return nil, err
	}
	if input.SubcategoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "subcategoryId is required")
	}
	if input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	if _, err := ownedSubcategory(s.db, userID, input.SubcategoryID); err != nil {
		return nil, err
	}

	anchor := models.CalendarDate(input.Date)
	template := models.Transaction{
		UserID:        userID,
		SubcategoryID: &input.SubcategoryID,
		Type:          input.Type,
		Amount:        input.Amount,
		Description:   input.Description,
	}

	switch input.Recurrence {
	case "", models.RecurrenceSingle:
		row := template
		row.Date = anchor
		row.Recurrence = models.RecurrenceSingle
		if err := s.db.Create(&row).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return []models.Transaction{row}, nil

	case models.RecurrenceFixed:
		series, err := recurrence.Expand(anchor, input.Installments)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInstallments, err.Error())
		}

		groupID := recurrence.NewGroupID()
		endDate := series.EndDate
		rows := make([]models.Transaction, 0, series.Len())
		for _, date := range series.Dates {
			row := template
			row.Date = date
			row.Recurrence = models.RecurrenceFixed
			row.RecurrenceGroupID = &groupID
			row.RecurrenceEndDate = &endDate
			rows = append(rows, row)
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&rows).Error
		})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrBatchCreateFailed, err)
		}
		return rows, nil

	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "recurrence must be 'single' or 'fixed'")
	}
}

// ListTransactions returns the user's transactions matching the criteria,
// newest first. Without classification criteria every transaction in the
// date range is returned.
func (s *transactionService) ListTransactions(userID string, criteria filter.Criteria) ([]models.Transaction, error) {
	return s.find(userID, criteria, filter.ModeListing)
}

// FindForReport returns the transactions matching the criteria ordered by
// date and category name. Without classification criteria nothing matches.
func (s *transactionService) FindForReport(userID string, criteria filter.Criteria) ([]models.Transaction, error) {
	return s.find(userID, criteria, filter.ModeReport)
}

func (s *transactionService) find(userID string, criteria filter.Criteria, mode filter.Mode) ([]models.Transaction, error) {
	fallbackID, err := s.categories.FallbackCategoryID()
	if err != nil {
		return nil, err
	}

	plan, err := filter.Build(s.subcategories, userID, fallbackID, criteria, mode)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transactions := []models.Transaction{}
	if plan.Empty {
		return transactions, nil
	}

	query := s.db.Model(&models.Transaction{}).
		Select("transactions.*").
		Preload("Subcategory.Category").
		Where("transactions.user_id = ?", userID)

	start, end := filter.Window(criteria)
	if start != nil {
		query = query.Where("transactions.date >= ?", *start)
	}
	if end != nil {
		query = query.Where("transactions.date <= ?", *end)
	}

	if cond := s.planCondition(plan); cond != nil {
		query = query.Where(cond)
	}

	switch mode {
	case filter.ModeReport:
		query = query.
			Joins("LEFT JOIN subcategories ON subcategories.id = transactions.subcategory_id").
			Joins("LEFT JOIN categories ON categories.id = subcategories.category_id").
			Order("transactions.date ASC").
			Order("categories.name ASC")
	default:
		query = query.
			Order("transactions.date DESC").
			Order("transactions.created_at DESC")
	}

	if err := query.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// likeEscaper makes a keyword match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// planCondition turns the plan's alternatives into one OR'd group, or nil
// when the plan places no classification constraint.
func (s *transactionService) planCondition(plan filter.Plan) *gorm.DB {
	var cond *gorm.DB
	for _, alt := range plan.Alternatives {
		expr := "transactions.subcategory_id IN ?"
		args := []interface{}{alt.SubcategoryIDs}
		if alt.Keyword != "" {
			expr = `(transactions.subcategory_id IN ? AND transactions.description LIKE ? ESCAPE '\')`
			args = append(args, "%"+likeEscaper.Replace(alt.Keyword)+"%")
		}

		if cond == nil {
			cond = s.db.Session(&gorm.Session{NewDB: true}).Where(expr, args...)
		} else {
			cond = cond.Or(expr, args...)
		}
	}
	return cond
}

// UpdateTransaction updates a transaction. With applyToFuture the new type,
// amount, description and subcategory are also written to every later row
// of the same series; their dates are kept. Rows dated on or before the
// target's original date are never touched.
func (s *transactionService) UpdateTransaction(
	userID, transactionID string,
	update TransactionUpdate,
	applyToFuture bool,
) (*models.Transaction, error) {
	if err := validateTransactionFields(update.Type, update.Amount); err != nil {
		return nil, err
	}

	var result models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var target models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", transactionID, userID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if applyToFuture && !target.IsRecurring() {
			return apperrors.ErrNotRecurring
		}

		if update.SubcategoryID != nil {
			if _, err := ownedSubcategory(tx, userID, *update.SubcategoryID); err != nil {
				return err
			}
		}

		originalDate := target.Date
		shared := sharedFieldUpdates(update)

		changes := make(map[string]interface{}, len(shared)+1)
		for k, v := range shared {
			changes[k] = v
		}
		if update.Date != nil {
			changes["date"] = models.CalendarDate(*update.Date)
		}

		if len(changes) > 0 {
			if err := tx.Model(&target).Updates(changes).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if applyToFuture && len(shared) > 0 {
			if err := tx.Model(&models.Transaction{}).
				Where("recurrence_group_id = ? AND user_id = ? AND date > ? AND id <> ?",
					*target.RecurrenceGroupID, userID, originalDate, target.ID).
				Updates(shared).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		return tx.Preload("Subcategory.Category").Where("id = ?", target.ID).First(&result).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// sharedFieldUpdates returns the column changes that propagate along a
// series. The date is deliberately absent.
func sharedFieldUpdates(update TransactionUpdate) map[string]interface{} {
	changes := make(map[string]interface{})
	if update.Type != nil {
		changes["type"] = *update.Type
	}
	if update.Amount != nil {
		changes["amount"] = *update.Amount
	}
	if update.Description != nil {
		changes["description"] = *update.Description
	}
	if update.SubcategoryID != nil {
		changes["subcategory_id"] = *update.SubcategoryID
	}
	return changes
}

// DeleteTransaction deletes one transaction. Other rows of its series stay.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	result := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteGroupFromDate deletes the rows of a series dated on or after cutoff.
func (s *transactionService) DeleteGroupFromDate(userID, groupID string, cutoff *time.Time) error {
	if cutoff == nil || cutoff.IsZero() {
		return apperrors.ErrCutoffDateRequired
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("recurrence_group_id = ? AND user_id = ? AND date >= ?",
			groupID, userID, models.CalendarDate(*cutoff)).
			Delete(&models.Transaction{}).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateTransactionFields checks the type and amount when present.
func validateTransactionFields(txType *models.TransactionType, amount *decimal.Decimal) error {
	if txType != nil {
		switch *txType {
		case models.TransactionTypeIncome, models.TransactionTypeExpense:
		default:
			return apperrors.ErrInvalidTransactionType
		}
	}
	if amount != nil && !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	return nil
}
