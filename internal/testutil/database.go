// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"testing"

	"fintracker/internal/database"
	"fintracker/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// allModels is the list of all GORM models to auto-migrate in tests.
var allModels = []interface{}{
	&models.User{},
	&models.Category{},
	&models.Subcategory{},
	&models.Transaction{},
	&models.Budget{},
	&models.Goal{},
}

// SetupTestDB creates an isolated in-memory SQLite database with all models
// migrated and the fixed categories seeded.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	models.PasswordHashCost = bcrypt.MinCost

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", nextID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// One connection keeps every statement on the same in-memory database
	// and serializes writers the way a single request would.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := database.SeedCategories(db); err != nil {
		t.Fatalf("failed to seed categories: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// ExecBeforeWrite runs query once, right before GORM writes to table with the
// given operation ("create" or "update"). It lets a test slip a competing row
// in between a service's existence check and its own write.
func ExecBeforeWrite(t *testing.T, db *gorm.DB, op, table, query string, args ...interface{}) {
	t.Helper()

	fired := false
	hook := func(tx *gorm.DB) {
		if fired || tx.Statement.Table != table {
			return
		}
		fired = true
		if _, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context, query, args...); err != nil {
			_ = tx.AddError(err)
		}
	}

	var err error
	switch op {
	case "create":
		err = db.Callback().Create().Before("gorm:create").Register("testutil:exec_before_create", hook)
	case "update":
		err = db.Callback().Update().Before("gorm:update").Register("testutil:exec_before_update", hook)
	default:
		t.Fatalf("unsupported operation %q", op)
	}
	if err != nil {
		t.Fatalf("failed to register %s callback: %v", op, err)
	}
}
