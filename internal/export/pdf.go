package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// BuildForecastPDF renders the summary and the projection table.
func BuildForecastPDF(doc Document) ([]byte, error) {
	s := doc.Forecast.Summary

	pdf, tr := newPDF()
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Cash Flow Forecast")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Household: %d", doc.HouseholdID),
		fmt.Sprintf("Period: %s to %s", doc.StartDate, doc.EndDate),
		fmt.Sprintf("Buffer: %.2f", doc.Buffer),
		fmt.Sprintf("Starting balance: %.2f", s.StartingBalance),
		fmt.Sprintf("Expected minimum: %.2f on %s", s.ExpectedMinimum, s.MinBalanceDate),
		fmt.Sprintf("Buffer status: %s", s.BufferStatus),
		fmt.Sprintf("Extra payment needed: %.2f", s.ExtraPaymentNeeded),
		fmt.Sprintf("Next pay date: %s (balance %s)", optionalString(s.NextPayDate), optionalMoney(s.ExpectedBalanceNextPay)),
	}
	for _, line := range lines {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(75, 6, "Event", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Balance", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, e := range doc.Forecast.Projection {
		pdf.CellFormat(25, 6, e.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(75, 6, tr(e.Event), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, tr(e.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", e.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", e.ExpectedBalance), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newPDF returns an A4 document and the translator from UTF-8 to the
// cp1252 encoding of the core fonts. Household data may carry accented
// names, so every user supplied string goes through tr.
func newPDF() (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}
