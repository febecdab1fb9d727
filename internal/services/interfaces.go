package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintracker/internal/filter"
	"fintracker/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// CategoryServicer defines the contract for the fixed category taxonomy.
type CategoryServicer interface {
	ListCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	FallbackCategoryID() (string, error)
}

// SubcategoryServicer defines the contract for user-owned subcategories.
// It also resolves category selections for the transaction filter.
type SubcategoryServicer interface {
	filter.SubcategoryResolver
	ListSubcategories(userID string) ([]models.Subcategory, error)
	CreateSubcategory(userID, name, categoryID string) (*models.Subcategory, error)
	DeleteSubcategory(userID, subcategoryID string) error
}

// TransactionInput carries the fields of a new transaction.
type TransactionInput struct {
	Type          models.TransactionType
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	SubcategoryID string
	Recurrence    models.RecurrenceKind
	Installments  int
}

// TransactionUpdate carries the fields to change on a transaction. Nil
// fields are left as they are.
type TransactionUpdate struct {
	Type          *models.TransactionType
	Amount        *decimal.Decimal
	Date          *time.Time
	Description   *string
	SubcategoryID *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) ([]models.Transaction, error)
	ListTransactions(userID string, criteria filter.Criteria) ([]models.Transaction, error)
	FindForReport(userID string, criteria filter.Criteria) ([]models.Transaction, error)
	UpdateTransaction(userID, transactionID string, update TransactionUpdate, applyToFuture bool) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	DeleteGroupFromDate(userID, groupID string, cutoff *time.Time) error
}

// BudgetUpdate carries the fields to change on a budget. Nil fields are
// left as they are.
type BudgetUpdate struct {
	Category *string
	Limit    *decimal.Decimal
	Month    *int
	Year     *int
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, category string, limit decimal.Decimal, month, year int) (*models.Budget, error)
	GetUserBudgets(userID string, month, year *int) ([]models.Budget, error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, update BudgetUpdate) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
}

// GoalUpdate carries the fields to change on a goal. Nil fields are left as
// they are.
type GoalUpdate struct {
	Title         *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	Deadline      *time.Time
}

// GoalServicer defines the contract for savings goals.
type GoalServicer interface {
	CreateGoal(userID, title string, target decimal.Decimal, current *decimal.Decimal, deadline *time.Time) (*models.Goal, error)
	GetUserGoals(userID string) ([]models.Goal, error)
	UpdateGoal(userID, goalID string, update GoalUpdate) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
}

// ReportResult is the outcome of a report request. PDF is always set;
// Recipient is set when the report was emailed.
type ReportResult struct {
	PDF       []byte
	Recipient string
}

// Emailed reports whether the report was delivered by email.
func (r *ReportResult) Emailed() bool { return r.Recipient != "" }

// ReportServicer defines the contract for report generation and delivery.
type ReportServicer interface {
	GenerateReport(ctx context.Context, userID string, criteria filter.Criteria, sendEmail bool) (*ReportResult, error)
}
