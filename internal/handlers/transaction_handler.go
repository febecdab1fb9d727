package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/filter"
	"fintracker/internal/models"
	"fintracker/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. Installments is required when recurrence is "fixed".
type CreateTransactionRequest struct {
	Type          models.TransactionType `json:"tipo" binding:"required,transaction_type"`
	Amount        decimal.Decimal        `json:"valor" binding:"required,gt=0" swaggertype:"string" example:"150.00"`
	Date          string                 `json:"data" binding:"required" example:"2024-01-15"`
	Description   string                 `json:"descricao" binding:"max=500"`
	SubcategoryID string                 `json:"subcategoryId" binding:"required,uuid"`
	Recurrence    models.RecurrenceKind  `json:"recurrence" binding:"omitempty,recurrence_kind"`
	Installments  int                    `json:"installments" binding:"omitempty,min=1,max=120"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Omitted fields are unchanged.
type UpdateTransactionRequest struct {
	Type          *models.TransactionType `json:"tipo" binding:"omitempty,transaction_type"`
	Amount        *decimal.Decimal        `json:"valor" binding:"omitempty,gt=0" swaggertype:"string"`
	Date          *string                 `json:"data"`
	Description   *string                 `json:"descricao" binding:"omitempty,max=500"`
	SubcategoryID *string                 `json:"subcategoryId" binding:"omitempty,uuid"`
}

// CreateTransaction handles the creation of a single transaction or a fixed
// monthly series
// @Summary     Create a transaction
// @Description Create a single transaction, or with recurrence "fixed" one row per month for the given number of installments
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Single transaction created"
// @Success     201 {array}  models.Transaction "Series created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Subcategory not found or not owned"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseFlexibleTime(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rows, err := h.transactionService.CreateTransaction(userID, services.TransactionInput{
		Type:          req.Type,
		Amount:        req.Amount,
		Date:          date,
		Description:   req.Description,
		SubcategoryID: req.SubcategoryID,
		Recurrence:    req.Recurrence,
		Installments:  req.Installments,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if req.Recurrence == models.RecurrenceFixed {
		c.JSON(http.StatusCreated, rows)
		return
	}
	c.JSON(http.StatusCreated, rows[0])
}

// ListTransactions returns the user's transactions
// @Summary     List transactions
// @Description List transactions newest first. Categories expand to the user's subcategories; the keyword narrows only the catch-all category.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       startDate     query string false "Start date (YYYY-MM-DD or RFC3339)"
// @Param       endDate       query string false "End date, inclusive (YYYY-MM-DD or RFC3339)"
// @Param       categories    query []string false "Category IDs (repeated or comma-separated)"
// @Param       subcategories query []string false "Subcategory IDs (repeated or comma-separated)"
// @Param       keywords      query string false "Description keyword"
// @Success     200 {array}  models.Transaction "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	criteria, err := parseCriteriaQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.ListTransactions(userID, criteria)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// UpdateTransaction updates a transaction
// @Summary     Update a transaction
// @Description Update a transaction. With applyToFuture=true the type, amount, description and subcategory also apply to later rows of its series.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id            path  string true  "Transaction ID"
// @Param       applyToFuture query bool   false "Propagate to later rows of the series"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or not a recurring transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Subcategory not found or not owned"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.TransactionUpdate{
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		SubcategoryID: req.SubcategoryID,
	}
	if req.Date != nil {
		date, err := parseFlexibleTime(*req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		update.Date = &date
	}

	applyToFuture := false
	if raw := c.Query("applyToFuture"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "applyToFuture must be true or false"))
			return
		}
		applyToFuture = v
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, id, update, applyToFuture)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction deletes one transaction
// @Summary     Delete a transaction
// @Description Delete one transaction. Other rows of its series are kept.
// @Tags        transactions
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteGroupFromDate deletes the rows of a series from a cutoff date on
// @Summary     Delete a series from a date
// @Description Delete every row of the series dated on or after the cutoff
// @Tags        transactions
// @Security    BearerAuth
// @Param       groupId path  string true "Recurrence group ID"
// @Param       date    query string true "Cutoff date, inclusive (YYYY-MM-DD or RFC3339)"
// @Success     204 "Rows deleted"
// @Failure     400 {object} ErrorResponse "Missing or invalid cutoff date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/group/{groupId} [delete]
func (h *TransactionHandler) DeleteGroupFromDate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := parsePathID(c, "groupId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	cutoff, err := parseOptionalTime(c.Query("date"), "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteGroupFromDate(userID, groupID, cutoff); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseCriteriaQuery reads filter criteria from the query string.
func parseCriteriaQuery(c *gin.Context) (filter.Criteria, error) {
	var criteria filter.Criteria
	var err error

	if criteria.StartDate, err = parseOptionalTime(c.Query("startDate"), "startDate"); err != nil {
		return criteria, err
	}
	if criteria.EndDate, err = parseOptionalTime(c.Query("endDate"), "endDate"); err != nil {
		return criteria, err
	}
	if criteria.CategoryIDs, err = parseIDList(c.QueryArray("categories"), "category"); err != nil {
		return criteria, err
	}
	if criteria.SubcategoryIDs, err = parseIDList(c.QueryArray("subcategories"), "subcategory"); err != nil {
		return criteria, err
	}
	criteria.Keyword = c.Query("keywords")
	return criteria, nil
}
