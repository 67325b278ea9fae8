package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income represents a recorded income entry
type Income struct {
	ID          int64           `json:"id"`
	HouseholdID int64           `json:"household_id"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"` // Paycheck, Bonus, Gift, Other
}
