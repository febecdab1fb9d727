// Package report assembles transaction reports, renders them to PDF and
// delivers them by email.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"fintracker/internal/models"
)

// Line is one rendered transaction row.
type Line struct {
	Date        time.Time
	Category    string
	Subcategory string
	Description string
	Amount      decimal.Decimal
	Income      bool
}

// Summary holds the totals of a report period.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Document is everything a Renderer needs to produce a report.
type Document struct {
	Title      string
	ClientName string
	Start      time.Time
	End        time.Time
	Lines      []Line
	Summary    Summary
}

// Renderer turns a Document into a file.
type Renderer interface {
	Render(doc Document) ([]byte, error)
}

// NewDocument builds a document from transactions already in report order.
// Transactions without a subcategory are labelled "N/A". A zero start or end
// falls back to the first or last transaction date.
func NewDocument(title, clientName string, start, end time.Time, transactions []models.Transaction) Document {
	lines := make([]Line, 0, len(transactions))
	for _, t := range transactions {
		line := Line{
			Date:        t.Date,
			Category:    "N/A",
			Subcategory: "N/A",
			Description: t.Description,
			Amount:      t.Amount,
			Income:      t.Type == models.TransactionTypeIncome,
		}
		if t.Subcategory != nil {
			line.Subcategory = t.Subcategory.Name
			if t.Subcategory.Category != nil {
				line.Category = t.Subcategory.Category.Name
			}
		}
		lines = append(lines, line)
	}

	if len(lines) > 0 {
		if start.IsZero() {
			start = lines[0].Date
		}
		if end.IsZero() {
			end = lines[len(lines)-1].Date
		}
	}

	return Document{
		Title:      title,
		ClientName: clientName,
		Start:      start,
		End:        end,
		Lines:      lines,
		Summary:    Summarize(lines),
	}
}

// Summarize totals income and expense lines. Balance is income minus expense.
func Summarize(lines []Line) Summary {
	income, expense := decimal.Zero, decimal.Zero
	for _, l := range lines {
		if l.Income {
			income = income.Add(l.Amount)
		} else {
			expense = expense.Add(l.Amount)
		}
	}
	return Summary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}
