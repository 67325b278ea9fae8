package models

// BufferAlert describes a forecast whose minimum balance falls below the buffer
type BufferAlert struct {
	HouseholdID        int64
	BufferStatus       string
	ExpectedMinimum    float64
	Buffer             float64
	ExtraPaymentNeeded float64
	MinBalanceDate     string
}
