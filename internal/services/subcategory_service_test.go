package services

import (
	"testing"

	"fintracker/internal/models"
	"fintracker/internal/testutil"
)

func TestCreateSubcategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CategoryByName(t, db, "Transporte")

		sub, err := svc.CreateSubcategory(user.ID, " Uber ", category.ID)
		testutil.AssertNoError(t, err)

		if sub.Name != "Uber" {
			t.Errorf("expected trimmed name Uber, got %q", sub.Name)
		}
		if sub.UserID != user.ID {
			t.Errorf("expected owner %s, got %s", user.ID, sub.UserID)
		}
		if sub.Category == nil || sub.Category.ID != category.ID {
			t.Error("expected parent category to be attached")
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateSubcategory(user.ID, "Uber", "0190a000-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateSubcategory(user.ID, "  ", testutil.FallbackCategory(t, db).ID)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListSubcategories(t *testing.T) {
	t.Run("only_own_with_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		food := testutil.CategoryByName(t, db, "Alimentação").ID
		testutil.CreateTestSubcategory(t, db, user.ID, food, "Restaurante")
		testutil.CreateTestSubcategory(t, db, user.ID, food, "Mercado")
		testutil.CreateTestSubcategory(t, db, other.ID, food, "Padaria")

		subs, err := svc.ListSubcategories(user.ID)
		testutil.AssertNoError(t, err)

		if len(subs) != 2 {
			t.Fatalf("expected 2 subcategories, got %d", len(subs))
		}
		if subs[0].Name != "Mercado" || subs[1].Name != "Restaurante" {
			t.Errorf("expected ordered by name, got %s, %s", subs[0].Name, subs[1].Name)
		}
		if subs[0].Category == nil || subs[0].Category.Name != "Alimentação" {
			t.Error("expected parent category to be preloaded")
		}
	})
}

func TestDeleteSubcategory(t *testing.T) {
	t.Run("orphans_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)
		user := testutil.CreateTestUser(t, db)
		sub := testutil.CreateTestSubcategory(t, db, user.ID, testutil.FallbackCategory(t, db).ID, "Diversos")
		tx := testutil.CreateTestTransaction(t, db, user.ID, sub.ID, models.TransactionTypeExpense, "10", testutil.Date(2024, 1, 1), "Presente")

		testutil.AssertNoError(t, svc.DeleteSubcategory(user.ID, sub.ID))

		var stored models.Transaction
		if err := db.First(&stored, "id = ?", tx.ID).Error; err != nil {
			t.Fatalf("expected transaction to survive: %v", err)
		}
		if stored.SubcategoryID != nil {
			t.Errorf("expected subcategory to be cleared, got %s", *stored.SubcategoryID)
		}
	})

	t.Run("other_users_subcategory", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcategoryService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		sub := testutil.CreateTestSubcategory(t, db, owner.ID, testutil.FallbackCategory(t, db).ID, "Diversos")

		err := svc.DeleteSubcategory(other.ID, sub.ID)
		testutil.AssertAppError(t, err, "SUBCATEGORY_NOT_FOUND")
	})
}

func TestSubcategoryIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSubcategoryService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	food := testutil.CategoryByName(t, db, "Alimentação").ID
	leisure := testutil.CategoryByName(t, db, "Lazer").ID
	a := testutil.CreateTestSubcategory(t, db, user.ID, food, "A")
	testutil.CreateTestSubcategory(t, db, user.ID, leisure, "B")
	testutil.CreateTestSubcategory(t, db, other.ID, food, "C")

	ids, err := svc.SubcategoryIDs(user.ID, []string{food})
	testutil.AssertNoError(t, err)
	if len(ids) != 1 || ids[0] != a.ID {
		t.Errorf("expected [%s], got %v", a.ID, ids)
	}

	ids, err = svc.SubcategoryIDs(user.ID, nil)
	testutil.AssertNoError(t, err)
	if len(ids) != 0 {
		t.Errorf("expected no ids for empty selection, got %v", ids)
	}
}
