// Package forecast projects a household's cash balance forward in time.
//
// Recurring bills, fund deposits and income are expanded into dated events,
// merged into one stream ordered by date and folded over the seed cash
// balance. The result carries the running balance after every event, the
// lowest balance reached and a risk classification against a buffer.
//
// Everything here is a pure function of its inputs: no I/O, no shared state.
package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/Dan9191/budget-service/internal/models"
	"github.com/shopspring/decimal"
)

// Input is the household data a forecast reads. Callers load it fresh for
// every run.
type Input struct {
	Bills          []models.Bill
	RecurringFunds []models.Fund
	CashFunds      []models.Fund
	Incomes        []models.Income
}

// Result is a completed forecast
type Result struct {
	StartDate time.Time
	EndDate   time.Time
	Buffer    decimal.Decimal

	Events []Event

	StartingBalance    decimal.Decimal
	ExpectedMinimum    decimal.Decimal
	ActualMinimum      decimal.Decimal
	ExtraPaymentNeeded decimal.Decimal
	MinBalanceDate     time.Time
	BufferStatus       string

	UpcomingBills []Occurrence

	NextPayDate            *time.Time
	ExpectedBalanceNextPay decimal.NullDecimal
}

// SeedBalance sums the balances of cash funds.
func SeedBalance(funds []models.Fund) decimal.Decimal {
	total := decimal.Zero
	for _, f := range funds {
		if f.FundType != models.FundTypeCash {
			continue
		}
		total = total.Add(f.Balance)
	}
	return total
}

// Generate runs a forecast. Invalid parameters return ErrInvalidParameter
// before anything is computed; any other fault returns ErrComputation.
func Generate(in Input, p Params) (res *Result, err error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %v", ErrComputation, r)
		}
	}()

	start := Day(p.StartDate)
	end := p.EndDate()
	seed := SeedBalance(in.CashFunds)

	events := collectEvents(in, start, end)
	l := fold(events, seed, start)

	res = &Result{
		StartDate:          start,
		EndDate:            end,
		Buffer:             p.Buffer,
		Events:             events,
		StartingBalance:    seed,
		ExpectedMinimum:    l.minimum,
		ActualMinimum:      l.minimum.Sub(p.Buffer),
		ExtraPaymentNeeded: ExtraPaymentNeeded(l.minimum, p.Buffer),
		MinBalanceDate:     l.minimumDate,
		BufferStatus:       BufferStatus(l.minimum, p.Buffer),
		UpcomingBills:      UpcomingBills(in.Bills, start, DefaultUpcomingBillsDays),
	}

	if len(in.Incomes) > 0 {
		payDate := NextPayDate(start)
		res.NextPayDate = &payDate
		res.ExpectedBalanceNextPay = decimal.NewNullDecimal(BalanceAt(events, seed, payDate))
	}

	return res, nil
}

// collectEvents generates bills, then funds, then incomes and sorts them by
// date. Same-day events keep generation order.
func collectEvents(in Input, start, end time.Time) []Event {
	var events []Event
	for _, bill := range in.Bills {
		if !bill.IsActive {
			continue
		}
		events = append(events, BillEvents(bill, start, end)...)
	}
	for _, fund := range in.RecurringFunds {
		events = append(events, FundEvents(fund, start, end)...)
	}
	for _, income := range in.Incomes {
		events = append(events, IncomeEvents(income, start, end)...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

// ledger is the accumulator threaded through the fold
type ledger struct {
	balance     decimal.Decimal
	minimum     decimal.Decimal
	minimumDate time.Time
}

// fold applies events in order, stamping each with the balance after it.
// The first date reaching the lowest balance wins.
func fold(events []Event, seed decimal.Decimal, start time.Time) ledger {
	l := ledger{balance: seed, minimum: seed, minimumDate: start}
	for i := range events {
		l.balance = l.balance.Add(events[i].Amount)
		events[i].Balance = l.balance
		if l.balance.LessThan(l.minimum) {
			l.minimum = l.balance
			l.minimumDate = events[i].Date
		}
	}
	return l
}

// BalanceAt replays sorted events from seed through date inclusive.
func BalanceAt(events []Event, seed decimal.Decimal, date time.Time) decimal.Decimal {
	balance := seed
	for _, e := range events {
		if e.Date.After(date) {
			break
		}
		balance = balance.Add(e.Amount)
	}
	return balance
}

// ExtraPaymentNeeded is how far the minimum falls short of the buffer.
func ExtraPaymentNeeded(minimum, buffer decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, buffer.Sub(minimum))
}

var warningFactor = decimal.NewFromFloat(1.5)

// BufferStatus classifies a minimum balance: OK at or above 1.5x the buffer,
// Warning at or above the buffer, Danger below it.
func BufferStatus(minimum, buffer decimal.Decimal) string {
	switch {
	case minimum.GreaterThanOrEqual(buffer.Mul(warningFactor)):
		return models.BufferStatusOK
	case minimum.GreaterThanOrEqual(buffer):
		return models.BufferStatusWarning
	default:
		return models.BufferStatusDanger
	}
}
