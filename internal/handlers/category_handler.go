package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/services"
)

// CategoryHandler handles the fixed category set and the user's
// subcategories.
type CategoryHandler struct {
	categoryService    services.CategoryServicer
	subcategoryService services.SubcategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer, subcategoryService services.SubcategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, subcategoryService: subcategoryService}
}

// CreateSubcategoryRequest represents the request payload for creating a subcategory
type CreateSubcategoryRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	CategoryID string `json:"categoryId" binding:"required,uuid"`
}

// ListCategories returns every category.
// @Summary     List categories
// @Description Get the fixed set of principal categories ordered by name
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Category "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListSubcategories returns the user's subcategories.
// @Summary     List subcategories
// @Description Get the authenticated user's subcategories with their category
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Subcategory "Subcategories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subcategories [get]
func (h *CategoryHandler) ListSubcategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subcategories, err := h.subcategoryService.ListSubcategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, subcategories)
}

// CreateSubcategory creates a subcategory under a category.
// @Summary     Create a subcategory
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSubcategoryRequest true "Subcategory details"
// @Success     201 {object} models.Subcategory "Subcategory created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subcategories [post]
func (h *CategoryHandler) CreateSubcategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sub, err := h.subcategoryService.CreateSubcategory(userID, req.Name, req.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// DeleteSubcategory deletes a subcategory; its transactions are kept
// without one.
// @Summary     Delete a subcategory
// @Tags        categories
// @Security    BearerAuth
// @Param       id path string true "Subcategory ID"
// @Success     204 "Subcategory deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Subcategory not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subcategories/{id} [delete]
func (h *CategoryHandler) DeleteSubcategory(c *gin.Context) {
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

	if err := h.subcategoryService.DeleteSubcategory(userID, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
