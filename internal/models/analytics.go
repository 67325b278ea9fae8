package models

// Buffer statuses
const (
	BufferStatusOK      = "OK"
	BufferStatusWarning = "Warning"
	BufferStatusDanger  = "Danger"
	BufferStatusUnknown = "Unknown"
)

// Forecast is the projected cash flow for a household
type Forecast struct {
	Projection []ProjectionEntry `json:"projection"`
	Summary    ForecastSummary   `json:"summary"`
}

// ProjectionEntry represents one dated cash movement and the balance after it
type ProjectionEntry struct {
	Date            string  `json:"date"` // Format: YYYY-MM-DD
	Event           string  `json:"event"`
	Type            string  `json:"type"` // bill_payment, fund_deposit, income
	Amount          float64 `json:"amount"`
	ExpectedBalance float64 `json:"expected_balance"`
}

// ForecastSummary represents the risk metrics derived from a projection
type ForecastSummary struct {
	StartingBalance        float64        `json:"starting_balance"`
	ExpectedMinimum        float64        `json:"expected_minimum"`
	ActualMinimum          float64        `json:"actual_minimum"` // ExpectedMinimum - buffer
	ExtraPaymentNeeded     float64        `json:"extra_payment_needed"`
	BufferStatus           string         `json:"buffer_status"`
	MinBalanceDate         string         `json:"min_balance_date"`
	UpcomingBills          []UpcomingBill `json:"upcoming_bills"`
	NextPayDate            *string        `json:"next_pay_date"`
	ExpectedBalanceNextPay *float64       `json:"expected_balance_next_pay"`
}

// UpcomingBill represents the next occurrence of a bill inside the summary window
type UpcomingBill struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	DueDate   string  `json:"due_date"`
	Category  string  `json:"category"`
	IsAutopay bool    `json:"is_autopay"`
}

// ScheduledBill represents a bill occurrence in the bill schedule report
type ScheduledBill struct {
	Date      string  `json:"date"`
	BillID    int64   `json:"bill_id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	IsAutopay bool    `json:"is_autopay"`
}

// BillSchedule represents bills due within the next N days
type BillSchedule struct {
	UpcomingBills []ScheduledBill `json:"upcoming_bills"`
	TotalAmount   float64         `json:"total_amount"`
	AutopayAmount float64         `json:"autopay_amount"`
	ManualAmount  float64         `json:"manual_amount"`
	PeriodDays    int             `json:"period_days"`
}

// FundBalance is the short form of a fund used in reports
type FundBalance struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	FundType string  `json:"fund_type"`
}

// ForecastDigest is the part of a forecast shown on the summary report
type ForecastDigest struct {
	UpcomingBills      []UpcomingBill `json:"upcoming_bills"`
	ExpectedBalance    *float64       `json:"expected_balance"`
	ExtraPaymentNeeded float64        `json:"extra_payment_needed"`
	BufferStatus       string         `json:"buffer_status"`
	NextPayDate        *string        `json:"next_pay_date"`
}

// SummaryReport represents the household overview
type SummaryReport struct {
	TotalBalance    float64        `json:"total_balance"`
	Funds           []FundBalance  `json:"funds"`
	ForecastSummary ForecastDigest `json:"forecast_summary"`
}

// FinancialHealth represents the financial health analysis
type FinancialHealth struct {
	HealthStatus       string   `json:"health_status"` // Excellent, Good, Fair, Poor
	TotalBalance       float64  `json:"total_balance"`
	CashFunds          float64  `json:"cash_funds"`
	SavingsFunds       float64  `json:"savings_funds"`
	ExpenseFunds       float64  `json:"expense_funds"`
	EmergencyFundRatio float64  `json:"emergency_fund_ratio"` // percent, 1dp
	BufferStatus       string   `json:"buffer_status"`
	ProjectedMinimum   float64  `json:"projected_minimum"`
	ExtraPaymentNeeded float64  `json:"extra_payment_needed"`
	Recommendations    []string `json:"recommendations"`
}

// RecurringDepositRun represents the outcome of processing recurring deposits
type RecurringDepositRun struct {
	Message        string  `json:"message"`
	ProcessedFunds int     `json:"processed_funds"`
	SkippedFunds   int     `json:"skipped_funds"`
	TotalAmount    float64 `json:"total_amount"`
	Funds          []Fund  `json:"funds"`
}
