package services

import (
	"context"
	"errors"
	"testing"

	"fintracker/internal/filter"
	"fintracker/internal/models"
	"fintracker/internal/report"
	"fintracker/internal/testutil"
)

type stubRenderer struct {
	out []byte
	err error
	doc report.Document
}

func (r *stubRenderer) Render(doc report.Document) ([]byte, error) {
	r.doc = doc
	return r.out, r.err
}

type stubMailer struct {
	to  string
	pdf []byte
	err error
}

func (m *stubMailer) Send(_ context.Context, to string, pdf []byte) error {
	m.to, m.pdf = to, pdf
	return m.err
}

type reportFixture struct {
	svc  ReportServicer
	user *models.User
	food string
}

func setupReport(t *testing.T, renderer report.Renderer, mailer report.Mailer) reportFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	user := testutil.CreateTestUser(t, db)
	food := testutil.CategoryByName(t, db, "Alimentação").ID
	sub := testutil.CreateTestSubcategory(t, db, user.ID, food, "Mercado")
	testutil.CreateTestTransaction(t, db, user.ID, sub.ID, models.TransactionTypeExpense, "75", testutil.Date(2024, 1, 10), "Feira")
	testutil.CreateTestTransaction(t, db, user.ID, sub.ID, models.TransactionTypeIncome, "20", testutil.Date(2024, 1, 11), "Reembolso")

	svc := NewReportService(NewUserService(db), newTransactionService(db), renderer, mailer, "Relatório de Transações")
	return reportFixture{svc: svc, user: user, food: food}
}

func TestGenerateReport(t *testing.T) {
	t.Run("download", func(t *testing.T) {
		renderer := &stubRenderer{out: []byte("%PDF-stub")}
		f := setupReport(t, renderer, nil)

		result, err := f.svc.GenerateReport(context.Background(), f.user.ID, filter.Criteria{CategoryIDs: []string{f.food}}, false)
		testutil.AssertNoError(t, err)

		if string(result.PDF) != "%PDF-stub" {
			t.Errorf("expected rendered bytes, got %q", result.PDF)
		}
		if result.Emailed() {
			t.Error("expected no email delivery")
		}
		if len(renderer.doc.Lines) != 2 {
			t.Errorf("expected 2 lines, got %d", len(renderer.doc.Lines))
		}
		testutil.AssertAmount(t, "-55", renderer.doc.Summary.Balance)
		if renderer.doc.ClientName != f.user.Name {
			t.Errorf("expected client %s, got %s", f.user.Name, renderer.doc.ClientName)
		}
	})

	t.Run("email", func(t *testing.T) {
		mailer := &stubMailer{}
		f := setupReport(t, &stubRenderer{out: []byte("%PDF-stub")}, mailer)

		result, err := f.svc.GenerateReport(context.Background(), f.user.ID, filter.Criteria{CategoryIDs: []string{f.food}}, true)
		testutil.AssertNoError(t, err)

		if result.Recipient != f.user.Email || mailer.to != f.user.Email {
			t.Errorf("expected delivery to %s, got %s", f.user.Email, mailer.to)
		}
		if string(mailer.pdf) != "%PDF-stub" {
			t.Error("expected mailer to receive the rendered pdf")
		}
	})

	t.Run("no_classification_finds_nothing", func(t *testing.T) {
		f := setupReport(t, &stubRenderer{out: []byte("%PDF-stub")}, nil)

		_, err := f.svc.GenerateReport(context.Background(), f.user.ID, filter.Criteria{}, false)
		testutil.AssertAppError(t, err, "NO_TRANSACTIONS_FOUND")
	})

	t.Run("render_failure", func(t *testing.T) {
		f := setupReport(t, &stubRenderer{err: errors.New("boom")}, nil)

		_, err := f.svc.GenerateReport(context.Background(), f.user.ID, filter.Criteria{CategoryIDs: []string{f.food}}, false)
		testutil.AssertAppError(t, err, "REPORT_GENERATION_FAILED")
	})

	t.Run("mail_failure", func(t *testing.T) {
		f := setupReport(t, &stubRenderer{out: []byte("%PDF-stub")}, &stubMailer{err: errors.New("smtp down")})

		_, err := f.svc.GenerateReport(context.Background(), f.user.ID, filter.Criteria{CategoryIDs: []string{f.food}}, true)
		testutil.AssertAppError(t, err, "REPORT_DELIVERY_FAILED")
	})

	t.Run("mail_not_configured", func(t *testing.T) {
		f := setupReport(t, &stubRenderer{out: []byte("%PDF-stub")}, nil)

		_, err := f.svc.GenerateReport(context.Background(), f.user.ID, filter.Criteria{CategoryIDs: []string{f.food}}, true)
		testutil.AssertAppError(t, err, "REPORT_DELIVERY_FAILED")
	})
}
