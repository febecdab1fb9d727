package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	dateLayout = "02/01/2006"

	pageMargin  = 15.0
	rowHeight   = 7.0
	dateWidth   = 25.0
	amountWidth = 32.0
)

// PDFRenderer renders documents as A4 PDFs with the core Helvetica font.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render lays out the header, the transaction table with zebra rows and the
// period totals.
func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	// Core fonts are cp1252; accented names need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin
	textWidth := (contentWidth - dateWidth - amountWidth) / 2

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	period := fmt.Sprintf("Período: %s a %s", doc.Start.Format(dateLayout), doc.End.Format(dateLayout))
	pdf.CellFormat(0, 7, tr(period), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Cliente: "+doc.ClientName), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetDrawColor(221, 221, 221)
	pdf.SetLineWidth(0.2)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(238, 238, 238)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(dateWidth, rowHeight, "Data", "1", 0, "L", true, 0, "")
		pdf.CellFormat(textWidth, rowHeight, "Categoria", "1", 0, "L", true, 0, "")
		pdf.CellFormat(textWidth, rowHeight, tr("Descrição"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(amountWidth, rowHeight, "Valor", "1", 1, "R", true, 0, "")
	}
	header()

	pdf.SetFont("Helvetica", "", 9)
	_, pageHeight := pdf.GetPageSize()
	for i, line := range doc.Lines {
		if pdf.GetY()+rowHeight > pageHeight-pageMargin {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 9)
		}

		fill := i%2 == 1
		pdf.SetFillColor(249, 249, 249)
		pdf.SetTextColor(0, 0, 0)

		description := line.Description
		if description == "" {
			description = "-"
		}

		pdf.CellFormat(dateWidth, rowHeight, line.Date.Format(dateLayout), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(textWidth, rowHeight, fit(pdf, tr(line.Category+" / "+line.Subcategory), textWidth), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(textWidth, rowHeight, fit(pdf, tr(description), textWidth), "1", 0, "L", fill, 0, "")

		sign := "- "
		if line.Income {
			sign = "+ "
		}
		setAmountColor(pdf, line.Income)
		pdf.CellFormat(amountWidth, rowHeight, sign+line.Amount.StringFixed(2), "1", 1, "R", fill, 0, "")
	}

	pdf.Ln(3)
	labelWidth := contentWidth - amountWidth
	totals := []struct {
		label    string
		value    string
		positive bool
	}{
		{"TOTAL RECEITAS:", doc.Summary.Income.StringFixed(2), true},
		{"TOTAL DESPESAS:", "-" + doc.Summary.Expense.StringFixed(2), false},
		{"SALDO DO PERÍODO:", doc.Summary.Balance.StringFixed(2), !doc.Summary.Balance.IsNegative()},
	}
	for _, row := range totals {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(labelWidth, rowHeight, tr(row.label), "", 0, "R", false, 0, "")
		setAmountColor(pdf, row.positive)
		pdf.CellFormat(amountWidth, rowHeight, row.value, "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func setAmountColor(pdf *fpdf.Fpdf, positive bool) {
	if positive {
		pdf.SetTextColor(0, 128, 0)
		return
	}
	pdf.SetTextColor(200, 0, 0)
}

// fit truncates s with an ellipsis so it fits in a cell of the given width.
// s is already translated to the single-byte font encoding.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	limit := width - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > limit {
		s = s[:len(s)-1]
	}
	return s + "..."
}
