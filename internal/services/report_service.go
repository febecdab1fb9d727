package services

import (
	"context"
	"time"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/filter"
	"fintracker/internal/logger"
	"fintracker/internal/report"
)

// reportService assembles filtered transaction reports and delivers them as
// a download or by email.
type reportService struct {
	users        UserServicer
	transactions TransactionServicer
	renderer     report.Renderer
	mailer       report.Mailer
	title        string
}

// NewReportService creates a new ReportServicer. mailer may be nil, in which
// case email delivery fails.
func NewReportService(
	users UserServicer,
	transactions TransactionServicer,
	renderer report.Renderer,
	mailer report.Mailer,
	title string,
) ReportServicer {
	return &reportService{
		users:        users,
		transactions: transactions,
		renderer:     renderer,
		mailer:       mailer,
		title:        title,
	}
}

// GenerateReport renders the user's matching transactions and, when
// sendEmail is set, mails the PDF to the user's address.
func (s *reportService) GenerateReport(
	ctx context.Context,
	userID string,
	criteria filter.Criteria,
	sendEmail bool,
) (*ReportResult, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.FindForReport(userID, criteria)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, apperrors.ErrNoTransactionsFound
	}

	clientName := user.Name
	if clientName == "" {
		clientName = user.Email
	}
	doc := report.NewDocument(s.title, clientName, dateOrZero(criteria.StartDate), dateOrZero(criteria.EndDate), transactions)

	pdf, err := s.renderer.Render(doc)
	if err != nil {
		logger.Get().Errorw("Failed to render report", "user_id", userID, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrReportGenerationFailed, err)
	}
	if len(pdf) == 0 {
		return nil, apperrors.ErrReportGenerationFailed
	}

	result := &ReportResult{PDF: pdf}
	if !sendEmail {
		return result, nil
	}

	if s.mailer == nil {
		logger.Get().Warnw("Report email requested but mail is not configured", "user_id", userID)
		return nil, apperrors.ErrReportMailNotConfigured
	}
	if err := s.mailer.Send(ctx, user.Email, pdf); err != nil {
		logger.Get().Errorw("Failed to send report email", "user_id", userID, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrReportDeliveryFailed, err)
	}

	logger.Get().Infow("Report emailed", "user_id", userID, "transactions", len(transactions))
	result.Recipient = user.Email
	return result, nil
}

func dateOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
