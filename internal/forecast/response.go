package forecast

import (
	"github.com/Dan9191/budget-service/internal/models"
	"github.com/shopspring/decimal"
)

// Money rounds to cents for output.
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Response renders the forecast in its wire shape.
func (r *Result) Response() models.Forecast {
	projection := make([]models.ProjectionEntry, 0, len(r.Events))
	for _, e := range r.Events {
		projection = append(projection, models.ProjectionEntry{
			Date:            FormatDate(e.Date),
			Event:           e.Label,
			Type:            string(e.Kind),
			Amount:          Money(e.Amount),
			ExpectedBalance: Money(e.Balance),
		})
	}

	summary := models.ForecastSummary{
		StartingBalance:    Money(r.StartingBalance),
		ExpectedMinimum:    Money(r.ExpectedMinimum),
		ActualMinimum:      Money(r.ActualMinimum),
		ExtraPaymentNeeded: Money(r.ExtraPaymentNeeded),
		BufferStatus:       r.BufferStatus,
		MinBalanceDate:     FormatDate(r.MinBalanceDate),
		UpcomingBills:      UpcomingBillsResponse(r.UpcomingBills),
	}
	if r.NextPayDate != nil {
		payDate := FormatDate(*r.NextPayDate)
		summary.NextPayDate = &payDate
	}
	if r.ExpectedBalanceNextPay.Valid {
		balance := Money(r.ExpectedBalanceNextPay.Decimal)
		summary.ExpectedBalanceNextPay = &balance
	}

	return models.Forecast{Projection: projection, Summary: summary}
}

// UpcomingBillsResponse renders occurrences as forecast summary entries.
func UpcomingBillsResponse(occurrences []Occurrence) []models.UpcomingBill {
	bills := make([]models.UpcomingBill, 0, len(occurrences))
	for _, o := range occurrences {
		bills = append(bills, models.UpcomingBill{
			ID:        o.Bill.ID,
			Name:      o.Bill.Name,
			Amount:    Money(o.Bill.Amount),
			DueDate:   FormatDate(o.Date),
			Category:  o.Bill.Category,
			IsAutopay: o.Bill.IsAutopay,
		})
	}
	return bills
}

// ScheduleResponse renders occurrences as a bill schedule with totals.
func ScheduleResponse(occurrences []Occurrence, days int) models.BillSchedule {
	schedule := models.BillSchedule{
		UpcomingBills: make([]models.ScheduledBill, 0, len(occurrences)),
		PeriodDays:    days,
	}
	total, autopay, manual := decimal.Zero, decimal.Zero, decimal.Zero
	for _, o := range occurrences {
		schedule.UpcomingBills = append(schedule.UpcomingBills, models.ScheduledBill{
			Date:      FormatDate(o.Date),
			BillID:    o.Bill.ID,
			Name:      o.Bill.Name,
			Amount:    Money(o.Bill.Amount),
			Category:  o.Bill.Category,
			IsAutopay: o.Bill.IsAutopay,
		})
		total = total.Add(o.Bill.Amount)
		if o.Bill.IsAutopay {
			autopay = autopay.Add(o.Bill.Amount)
		} else {
			manual = manual.Add(o.Bill.Amount)
		}
	}
	schedule.TotalAmount = Money(total)
	schedule.AutopayAmount = Money(autopay)
	schedule.ManualAmount = Money(manual)
	return schedule
}
