package forecast

import (
	"fmt"
	"time"

	"github.com/Dan9191/budget-service/internal/models"
	"github.com/shopspring/decimal"
)

// EventKind classifies a projected cash movement
type EventKind string

const (
	KindBillPayment EventKind = "bill_payment"
	KindFundDeposit EventKind = "fund_deposit"
	KindIncome      EventKind = "income"
)

// DepositInterval is the assumed spacing of recurring fund deposits and paychecks
const DepositInterval = 14

// Event is one projected cash movement. Amount is signed: negative leaves the
// cash pool. Balance is filled in by the aggregator.
type Event struct {
	Date     time.Time
	Label    string
	Kind     EventKind
	Amount   decimal.Decimal
	SourceID int64
	Balance  decimal.Decimal
}

// BillEvents expands a bill into payments dated within [start, end].
func BillEvents(bill models.Bill, start, end time.Time) []Event {
	var events []Event
	freq := ParseFrequency(bill.Frequency)
	end = Day(end)
	for date := NextDue(bill.DueDate, freq, start); !date.After(end); date = freq.Advance(date) {
		events = append(events, Event{
			Date:     date,
			Label:    fmt.Sprintf("%s (Bill)", bill.Name),
			Kind:     KindBillPayment,
			Amount:   bill.Amount.Neg(),
			SourceID: bill.ID,
		})
	}
	return events
}

// FundEligible reports whether a fund produces deposit events.
func FundEligible(fund models.Fund) bool {
	return fund.HasRecurringDeposit() && !fund.SkipNext && fund.NextDepositDate != nil
}

// FundEvents expands a recurring fund into deposits dated within [start, end].
// A deposit date before start is moved forward in 14-day steps.
func FundEvents(fund models.Fund, start, end time.Time) []Event {
	if !FundEligible(fund) {
		return nil
	}
	start, end = Day(start), Day(end)
	date := Day(*fund.NextDepositDate)
	for date.Before(start) {
		date = date.AddDate(0, 0, DepositInterval)
	}

	var events []Event
	for ; !date.After(end); date = date.AddDate(0, 0, DepositInterval) {
		events = append(events, Event{
			Date:     date,
			Label:    fmt.Sprintf("%s Deposit", fund.Name),
			Kind:     KindFundDeposit,
			Amount:   fund.RecurringAmount.Decimal.Neg(),
			SourceID: fund.ID,
		})
	}
	return events
}

// IncomeEvents approximates an income source as a biweekly paycheck starting
// on the first Friday on or after start. The record's own date is ignored.
func IncomeEvents(income models.Income, start, end time.Time) []Event {
	var events []Event
	end = Day(end)
	for date := NextPayDate(start); !date.After(end); date = date.AddDate(0, 0, DepositInterval) {
		events = append(events, Event{
			Date:     date,
			Label:    fmt.Sprintf("%s (Income)", income.Source),
			Kind:     KindIncome,
			Amount:   income.Amount,
			SourceID: income.ID,
		})
	}
	return events
}
