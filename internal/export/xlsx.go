package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "summary"
	projectionSheet = "projection"
	billsSheet      = "upcoming_bills"
)

// BuildForecastXLSX renders a workbook with summary, projection and
// upcoming bill sheets.
func BuildForecastXLSX(doc Document) ([]byte, error) {
	s := doc.Forecast.Summary

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	for _, name := range []string{projectionSheet, billsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	summary := [][]any{
		{"Cash Flow Forecast"},
		{"Household", doc.HouseholdID},
		{"Start date", doc.StartDate},
		{"End date", doc.EndDate},
		{"Buffer", doc.Buffer},
		{"Starting balance", s.StartingBalance},
		{"Expected minimum", s.ExpectedMinimum},
		{"Actual minimum", s.ActualMinimum},
		{"Min balance date", s.MinBalanceDate},
		{"Buffer status", s.BufferStatus},
		{"Extra payment needed", s.ExtraPaymentNeeded},
		{"Next pay date", optionalString(s.NextPayDate)},
		{"Expected balance next pay", optionalMoney(s.ExpectedBalanceNextPay)},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, projectionSheet, 1, []any{"Date", "Event", "Type", "Amount", "Expected balance"}); err != nil {
		return nil, err
	}
	for i, e := range doc.Forecast.Projection {
		if err := setRow(f, projectionSheet, i+2, []any{e.Date, e.Event, e.Type, e.Amount, e.ExpectedBalance}); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, billsSheet, 1, []any{"Due date", "Name", "Category", "Amount", "Autopay"}); err != nil {
		return nil, err
	}
	for i, b := range s.UpcomingBills {
		if err := setRow(f, billsSheet, i+2, []any{b.DueDate, b.Name, b.Category, b.Amount, b.IsAutopay}); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	return f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values)
}
