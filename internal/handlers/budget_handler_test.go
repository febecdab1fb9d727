package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/models"
	"fintracker/internal/services"
)

const testBudgetID = "0190a000-0000-7000-8000-0000000000b1"

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn   func(userID, category string, limit decimal.Decimal, month, year int) (*models.Budget, error)
	getUserBudgetsFn func(userID string, month, year *int) ([]models.Budget, error)
	getBudgetByIDFn  func(userID, budgetID string) (*models.Budget, error)
	updateBudgetFn   func(userID, budgetID string, update services.BudgetUpdate) (*models.Budget, error)
	deleteBudgetFn   func(userID, budgetID string) error
}

func (m *mockBudgetService) CreateBudget(userID, category string, limit decimal.Decimal, month, year int) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, category, limit, month, year)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetUserBudgets(userID string, month, year *int) ([]models.Budget, error) {
	if m.getUserBudgetsFn != nil {
		return m.getUserBudgetsFn(userID, month, year)
	}
	return []models.Budget{}, nil
}

func (m *mockBudgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(userID, budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(userID, budgetID string, update services.BudgetUpdate) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(userID, budgetID, update)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) DeleteBudget(userID, budgetID string) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(userID, budgetID)
	}
	return nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := newTestRouter()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets", handler.GetBudgets)
	auth.GET("/budgets/:id", handler.GetBudget)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 with current spend", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(userID, category string, limit decimal.Decimal, month, year int) (*models.Budget, error) {
				if userID != testUserID || category != "Alimentação" || month != 3 || year != 2024 {
					t.Errorf("unexpected args %s %s %d %d", userID, category, month, year)
				}
				return &models.Budget{
					Base:         models.Base{ID: testBudgetID},
					Category:     category,
					Limit:        limit,
					Month:        month,
					Year:         year,
					CurrentSpend: decimal.Zero,
				}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budgets", `{"categoria":"Alimentação","limite":"800","mes":3,"ano":2024}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["id"] != testBudgetID {
			t.Errorf("expected id %s, got %v", testBudgetID, result["id"])
		}
		if result["gasto_atual"] != "0" {
			t.Errorf("expected gasto_atual 0, got %v", result["gasto_atual"])
		}
	})

	t.Run("returns 400 on invalid month", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "POST", "/budgets", `{"categoria":"Alimentação","limite":"800","mes":13,"ano":2024}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on negative limit", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "POST", "/budgets", `{"categoria":"Alimentação","limite":"-5","mes":3,"ano":2024}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on duplicate", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_, _ string, _ decimal.Decimal, _, _ int) (*models.Budget, error) {
				return nil, apperrors.ErrDuplicateBudget
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budgets", `{"categoria":"Alimentação","limite":"800","mes":3,"ano":2024}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_BUDGET")
	})

	t.Run("returns 404 on unknown category", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_, _ string, _ decimal.Decimal, _, _ int) (*models.Budget, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budgets", `{"categoria":"Nope","limite":"800","mes":3,"ano":2024}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	t.Run("passes month and year filters", func(t *testing.T) {
		var gotMonth, gotYear *int
		svc := &mockBudgetService{
			getUserBudgetsFn: func(_ string, month, year *int) ([]models.Budget, error) {
				gotMonth, gotYear = month, year
				return []models.Budget{{Category: "Transporte"}}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budgets?mes=3&ano=2024", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonth == nil || *gotMonth != 3 || gotYear == nil || *gotYear != 2024 {
			t.Errorf("unexpected filters %v %v", gotMonth, gotYear)
		}
	})

	t.Run("no filters", func(t *testing.T) {
		called := false
		svc := &mockBudgetService{
			getUserBudgetsFn: func(_ string, month, year *int) ([]models.Budget, error) {
				called = true
				if month != nil || year != nil {
					t.Error("expected nil filters")
				}
				return []models.Budget{}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusOK || !called {
			t.Fatalf("expected 200 and a service call, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad month", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		for _, q := range []string{"mes=abc", "mes=0", "ano=x"} {
			rec := doRequest(r, "GET", "/budgets?"+q, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", q, rec.Code)
			}
		}
	})
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetByIDFn: func(_, _ string) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "GET", "/budgets/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	var got services.BudgetUpdate
	svc := &mockBudgetService{
		updateBudgetFn: func(_, _ string, update services.BudgetUpdate) (*models.Budget, error) {
			got = update
			return &models.Budget{}, nil
		},
	}
	r := setupBudgetRouter(NewBudgetHandler(svc))

	rec := doRequest(r, "PUT", "/budgets/"+testBudgetID, `{"limite":"950.00"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Limit == nil || !got.Limit.Equal(decimal.NewFromInt(950)) {
		t.Errorf("expected limit 950, got %v", got.Limit)
	}
	if got.Category != nil || got.Month != nil || got.Year != nil {
		t.Errorf("expected other fields nil, got %+v", got)
	}
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

	rec := doRequest(r, "DELETE", "/budgets/"+testBudgetID, "")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
