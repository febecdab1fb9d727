package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintracker/internal/config"
	"fintracker/internal/models"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleTransactions() []models.Transaction {
	food := &models.Category{Name: "Alimentação"}
	market := &models.Subcategory{Name: "Mercado", Category: food}
	salary := &models.Subcategory{Name: "Salário", Category: &models.Category{Name: "Receitas"}}

	return []models.Transaction{
		{Type: models.TransactionTypeIncome, Amount: amount("3000"), Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Description: "Salário", Subcategory: salary},
		{Type: models.TransactionTypeExpense, Amount: amount("250.40"), Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Description: "Compras do mês", Subcategory: market},
		{Type: models.TransactionTypeExpense, Amount: amount("49.60"), Date: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)},
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		lines   []Line
		income  string
		expense string
		balance string
	}{
		{"empty", nil, "0", "0", "0"},
		{
			"mixed",
			[]Line{
				{Amount: amount("100.10"), Income: true},
				{Amount: amount("40.05")},
				{Amount: amount("0.05")},
			},
			"100.10", "40.10", "60",
		},
		{
			"negative_balance",
			[]Line{{Amount: amount("10"), Income: true}, {Amount: amount("25.5")}},
			"10", "25.5", "-15.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.lines)
			assert.True(t, amount(tt.income).Equal(s.Income), "income %s", s.Income)
			assert.True(t, amount(tt.expense).Equal(s.Expense), "expense %s", s.Expense)
			assert.True(t, amount(tt.balance).Equal(s.Balance), "balance %s", s.Balance)
		})
	}
}

func TestNewDocument(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	doc := NewDocument("Relatório", "Ana", start, end, sampleTransactions())

	require.Len(t, doc.Lines, 3)
	assert.Equal(t, "Receitas", doc.Lines[0].Category)
	assert.True(t, doc.Lines[0].Income)
	assert.Equal(t, "Alimentação", doc.Lines[1].Category)
	assert.Equal(t, "Mercado", doc.Lines[1].Subcategory)
	assert.Equal(t, "N/A", doc.Lines[2].Category)
	assert.Equal(t, "N/A", doc.Lines[2].Subcategory)
	assert.True(t, amount("2700").Equal(doc.Summary.Balance))
	assert.Equal(t, start, doc.Start)
}

func TestNewDocument_OpenPeriod(t *testing.T) {
	doc := NewDocument("Relatório", "Ana", time.Time{}, time.Time{}, sampleTransactions())

	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), doc.Start)
	assert.Equal(t, time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), doc.End)
}

func TestPDFRenderer(t *testing.T) {
	t.Run("renders pdf", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
		doc := NewDocument("Relatório de Transações", "Ana", start, end, sampleTransactions())

		out, err := NewPDFRenderer().Render(doc)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})

	t.Run("paginates long reports", func(t *testing.T) {
		lines := make([]Line, 200)
		for i := range lines {
			lines[i] = Line{
				Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Category:    "Outros",
				Subcategory: "Diversos",
				Description: strings.Repeat("descrição longa ", 10),
				Amount:      amount("1.99"),
			}
		}
		doc := Document{Title: "Relatório", ClientName: "Ana", Lines: lines, Summary: Summarize(lines)}

		out, err := NewPDFRenderer().Render(doc)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})
}

func TestSMTPMailerMessage(t *testing.T) {
	mailer := NewSMTPMailer(config.MailConfig{
		Host:     "smtp.example.com",
		Port:     465,
		User:     "reports@example.com",
		Pass:     "secret",
		FromName: "Meu Controle Financeiro",
	})

	msg, err := mailer.buildMessage("ana@example.com", []byte("%PDF-1.3 fake"))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "ana@example.com")
	assert.Contains(t, raw, "reports@example.com")
	assert.Contains(t, raw, AttachmentName)
	assert.Contains(t, raw, "application/pdf")
}

func TestSMTPMailerRejectsBadRecipient(t *testing.T) {
	mailer := NewSMTPMailer(config.MailConfig{Host: "smtp.example.com", Port: 587, User: "reports@example.com", Pass: "x"})

	err := mailer.Send(context.Background(), "not an address", []byte("pdf"))
	assert.Error(t, err)
}
