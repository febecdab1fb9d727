package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/filter"
	"fintracker/internal/services"
)

// reportFileName is the download name of a report served over HTTP.
const reportFileName = "Relatorio.pdf"

// ReportHandler handles report requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CustomReportRequest represents the filters and delivery mode of a report.
// At least one of categories, subcategories or keywords must select
// something, otherwise no transaction matches.
type CustomReportRequest struct {
	StartDate     string   `json:"startDate" example:"2024-01-01"`
	EndDate       string   `json:"endDate" example:"2024-01-31"`
	Categories    []string `json:"categories"`
	Subcategories []string `json:"subcategories"`
	Keywords      string   `json:"keywords"`
	SendEmail     bool     `json:"sendEmail"`
}

// CustomReport generates a filtered PDF report
// @Summary     Generate a custom report
// @Description Render the matching transactions as a PDF. With sendEmail the PDF is mailed to the user instead of returned.
// @Tags        reports
// @Accept      json
// @Produce     application/pdf
// @Produce     json
// @Security    BearerAuth
// @Param       request body CustomReportRequest true "Report filters"
// @Success     200 {file}   file            "PDF report"
// @Success     200 {object} MessageResponse "Report emailed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No transactions found"
// @Failure     500 {object} ErrorResponse "Report generation or delivery failed"
// @Router      /reports/custom [post]
func (h *ReportHandler) CustomReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CustomReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	criteria := filter.Criteria{Keyword: req.Keywords}
	if criteria.CategoryIDs, err = parseIDList(req.Categories, "category"); err != nil {
		respondWithError(c, err)
		return
	}
	if criteria.SubcategoryIDs, err = parseIDList(req.Subcategories, "subcategory"); err != nil {
		respondWithError(c, err)
		return
	}
	if criteria.StartDate, err = parseOptionalTime(req.StartDate, "startDate"); err != nil {
		respondWithError(c, err)
		return
	}
	if criteria.EndDate, err = parseOptionalTime(req.EndDate, "endDate"); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.reportService.GenerateReport(c.Request.Context(), userID, criteria, req.SendEmail)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if result.Emailed() {
		c.JSON(http.StatusOK, MessageResponse{Message: "report sent to " + result.Recipient})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+reportFileName+`"`)
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}
