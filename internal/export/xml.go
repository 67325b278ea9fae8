package export

import (
	"bytes"
	"strconv"

	"github.com/beevik/etree"
)

// BuildForecastXML renders the forecast as an XML document.
func BuildForecastXML(doc Document) ([]byte, error) {
	s := doc.Forecast.Summary

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("forecast")
	root.CreateAttr("household_id", strconv.FormatInt(doc.HouseholdID, 10))
	root.CreateAttr("start_date", doc.StartDate)
	root.CreateAttr("end_date", doc.EndDate)
	root.CreateAttr("buffer", money(doc.Buffer))

	summary := root.CreateElement("summary")
	summary.CreateElement("starting_balance").SetText(money(s.StartingBalance))
	summary.CreateElement("expected_minimum").SetText(money(s.ExpectedMinimum))
	summary.CreateElement("actual_minimum").SetText(money(s.ActualMinimum))
	summary.CreateElement("extra_payment_needed").SetText(money(s.ExtraPaymentNeeded))
	summary.CreateElement("buffer_status").SetText(s.BufferStatus)
	summary.CreateElement("min_balance_date").SetText(s.MinBalanceDate)
	if s.NextPayDate != nil {
		summary.CreateElement("next_pay_date").SetText(*s.NextPayDate)
	}
	if s.ExpectedBalanceNextPay != nil {
		summary.CreateElement("expected_balance_next_pay").SetText(money(*s.ExpectedBalanceNextPay))
	}

	bills := summary.CreateElement("upcoming_bills")
	for _, b := range s.UpcomingBills {
		el := bills.CreateElement("bill")
		el.CreateAttr("id", strconv.FormatInt(b.ID, 10))
		el.CreateAttr("due_date", b.DueDate)
		el.CreateAttr("autopay", strconv.FormatBool(b.IsAutopay))
		el.CreateElement("name").SetText(b.Name)
		el.CreateElement("category").SetText(b.Category)
		el.CreateElement("amount").SetText(money(b.Amount))
	}

	projection := root.CreateElement("projection")
	for _, e := range doc.Forecast.Projection {
		el := projection.CreateElement("event")
		el.CreateAttr("date", e.Date)
		el.CreateAttr("type", e.Type)
		el.CreateElement("label").SetText(e.Event)
		el.CreateElement("amount").SetText(money(e.Amount))
		el.CreateElement("expected_balance").SetText(money(e.ExpectedBalance))
	}

	x.Indent(2)
	var buf bytes.Buffer
	if _, err := x.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
