package forecast

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidParameter marks input rejected before any simulation runs.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrComputation marks an unexpected failure while projecting.
	ErrComputation = errors.New("forecast computation failed")
)

// Defaults applied when a caller omits a parameter
const (
	DefaultMonthsToProject   = 3
	DefaultBuffer            = 100
	DefaultUpcomingBillsDays = 7
	DefaultScheduleDays      = 30
)

// Params controls a single forecast run
type Params struct {
	StartDate       time.Time
	MonthsToProject int
	Buffer          decimal.Decimal
}

// DefaultParams returns the parameters used when a caller supplies none.
func DefaultParams(today time.Time) Params {
	return Params{
		StartDate:       Day(today),
		MonthsToProject: DefaultMonthsToProject,
		Buffer:          decimal.NewFromInt(DefaultBuffer),
	}
}

// Validate rejects parameters the engine cannot project.
func (p Params) Validate() error {
	if p.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", ErrInvalidParameter)
	}
	if p.MonthsToProject < 0 {
		return fmt.Errorf("%w: months_to_project must not be negative, got %d", ErrInvalidParameter, p.MonthsToProject)
	}
	if p.Buffer.IsNegative() {
		return fmt.Errorf("%w: buffer must not be negative, got %s", ErrInvalidParameter, p.Buffer)
	}
	return nil
}

// EndDate is the last day covered by the projection.
func (p Params) EndDate() time.Time {
	return AddMonths(Day(p.StartDate), p.MonthsToProject)
}

// ParseParams builds Params from raw query values. Empty values fall back to
// def.
func ParseParams(def Params, startDate, months, buffer string) (Params, error) {
	p := def

	if startDate != "" {
		t, err := ParseDate(startDate)
		if err != nil {
			return Params{}, err
		}
		p.StartDate = t
	}
	if months != "" {
		n, err := strconv.Atoi(months)
		if err != nil {
			return Params{}, fmt.Errorf("%w: months_to_project must be an integer, got %q", ErrInvalidParameter, months)
		}
		p.MonthsToProject = n
	}
	if buffer != "" {
		b, err := decimal.NewFromString(buffer)
		if err != nil {
			return Params{}, fmt.Errorf("%w: buffer must be a number, got %q", ErrInvalidParameter, buffer)
		}
		p.Buffer = b
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// ParseDays parses a day-count window, falling back to def when empty.
func ParseDays(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: days must be a non-negative integer, got %q", ErrInvalidParameter, s)
	}
	return n, nil
}
