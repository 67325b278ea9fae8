package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill represents a recurring household bill
type Bill struct {
	ID          int64           `json:"id"`
	HouseholdID int64           `json:"household_id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	Frequency   string          `json:"frequency"` // weekly, biweekly, monthly, quarterly, yearly
	Category    string          `json:"category"`
	IsAutopay   bool            `json:"is_autopay"`
	IsActive    bool            `json:"is_active"`
}
