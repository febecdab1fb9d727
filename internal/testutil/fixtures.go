package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Amount parses a decimal literal, failing the test on malformed input.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: TestPassword,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CategoryByName returns the seeded category with the given name.
func CategoryByName(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	var category models.Category
	if err := db.Where("name = ?", name).First(&category).Error; err != nil {
		t.Fatalf("seeded category %q not found: %v", name, err)
	}
	return &category
}

// FallbackCategory returns the seeded catch-all category.
func FallbackCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CategoryByName(t, db, models.FallbackCategoryName)
}

// CreateTestSubcategory creates a subcategory owned by userID under categoryID.
func CreateTestSubcategory(t *testing.T, db *gorm.DB, userID, categoryID, name string) *models.Subcategory {
	t.Helper()

	sub := &models.Subcategory{
		Name:       name,
		UserID:     userID,
		CategoryID: categoryID,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subcategory: %v", err)
	}
	return sub
}

// CreateTestTransaction creates a single transaction in subcategoryID.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, subcategoryID string, txType models.TransactionType, amount string, date time.Time, description string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:        userID,
		SubcategoryID: &subcategoryID,
		Type:          txType,
		Amount:        Amount(t, amount),
		Date:          models.CalendarDate(date),
		Description:   description,
		Recurrence:    models.RecurrenceSingle,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget for the named category and period.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, category string, month, year int, limit string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Limit:    Amount(t, limit),
		Month:    month,
		Year:     year,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal creates a goal with the given target and no progress.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID, title, target string) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:        userID,
		Title:         title,
		TargetAmount:  Amount(t, target),
		CurrentAmount: decimal.Zero,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
