package forecast

import (
	"strings"
	"time"
)

// Frequency is the recurrence period of a bill
type Frequency int

const (
	Monthly Frequency = iota
	Weekly
	Biweekly
	Quarterly
	Yearly
)

// ParseFrequency maps a stored frequency to its period, ignoring case and
// surrounding whitespace. Unrecognized values recur monthly.
func ParseFrequency(s string) Frequency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly":
		return Weekly
	case "biweekly":
		return Biweekly
	case "monthly":
		return Monthly
	case "quarterly":
		return Quarterly
	case "yearly":
		return Yearly
	default:
		return Monthly
	}
}

// String returns the stored name of the period.
func (f Frequency) String() string {
	switch f {
	case Weekly:
		return "weekly"
	case Biweekly:
		return "biweekly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		return "monthly"
	}
}

// Advance returns the occurrence one period after t.
func (f Frequency) Advance(t time.Time) time.Time {
	switch f {
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Biweekly:
		return t.AddDate(0, 0, 14)
	case Monthly:
		return AddMonths(t, 1)
	case Quarterly:
		return AddMonths(t, 3)
	case Yearly:
		return AddMonths(t, 12)
	default:
		return AddMonths(t, 1)
	}
}

// NextDue rolls a due date forward relative to ref. A due date already after
// ref is returned unchanged; otherwise it advances whole periods until it is
// strictly after ref.
func NextDue(due time.Time, f Frequency, ref time.Time) time.Time {
	next, ref := Day(due), Day(ref)
	for !next.After(ref) {
		next = f.Advance(next)
	}
	return next
}
