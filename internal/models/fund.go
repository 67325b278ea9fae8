package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fund types
const (
	FundTypeCash     = "Cash"
	FundTypeSavings  = "Savings"
	FundTypeExpenses = "Expenses"
)

// Fund represents a household envelope. Cash funds seed the forecast balance,
// funds with a recurring amount receive a deposit every two weeks.
type Fund struct {
	ID              int64               `json:"id"`
	HouseholdID     int64               `json:"household_id"`
	Name            string              `json:"name"`
	Balance         decimal.Decimal     `json:"balance"`
	FundType        string              `json:"fund_type"`
	RecurringAmount decimal.NullDecimal `json:"recurring_amount"`
	NextDepositDate *time.Time          `json:"next_deposit_date"`
	SkipNext        bool                `json:"skip_next"`
}

// HasRecurringDeposit reports whether the fund carries a positive recurring amount
func (f Fund) HasRecurringDeposit() bool {
	return f.RecurringAmount.Valid && f.RecurringAmount.Decimal.IsPositive()
}
