package forecast

import (
	"sort"
	"time"

	"github.com/Dan9191/budget-service/internal/models"
)

// Occurrence is the next due date of a bill
type Occurrence struct {
	Bill models.Bill
	Date time.Time
}

// UpcomingBills returns the next occurrence of every active bill falling
// within [start, start+days], ordered by date. It rolls due dates forward the
// same way BillEvents does, so both agree on when a bill is next paid.
func UpcomingBills(bills []models.Bill, start time.Time, days int) []Occurrence {
	start = Day(start)
	end := start.AddDate(0, 0, days)

	upcoming := make([]Occurrence, 0)
	for _, bill := range bills {
		if !bill.IsActive {
			continue
		}
		next := NextDue(bill.DueDate, ParseFrequency(bill.Frequency), start)
		if next.Before(start) || next.After(end) {
			continue
		}
		upcoming = append(upcoming, Occurrence{Bill: bill, Date: next})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	return upcoming
}
