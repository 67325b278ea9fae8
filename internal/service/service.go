package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/budget-service/internal/config"
	"github.com/Dan9191/budget-service/internal/forecast"
	"github.com/Dan9191/budget-service/internal/metrics"
	"github.com/Dan9191/budget-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Store is the persistence the service reads household data from
type Store interface {
	GetActiveBills(ctx context.Context, householdID int64) ([]models.Bill, error)
	GetFunds(ctx context.Context, householdID int64) ([]models.Fund, error)
	GetRecurringFunds(ctx context.Context, householdID int64) ([]models.Fund, error)
	GetCashFunds(ctx context.Context, householdID int64) ([]models.Fund, error)
	GetIncomes(ctx context.Context, householdID int64) ([]models.Income, error)
	ToggleFundSkipNext(ctx context.Context, householdID, fundID int64) (*models.Fund, error)
	ProcessFundDeposits(ctx context.Context, householdID int64, apply func([]models.Fund) ([]models.Fund, error)) error
	ListHouseholdIDs(ctx context.Context) ([]int64, error)
	GetHouseholdContacts(ctx context.Context, householdID int64) ([]models.HouseholdContact, error)
}

// Notifier delivers buffer alerts to household members
type Notifier interface {
	SendBufferAlert(to, username string, alert models.BufferAlert) error
}

// Service handles business logic
type Service struct {
	store    Store
	notifier Notifier
	log      *logrus.Logger
	config   *config.Config
	now      func() time.Time
}

// NewService initializes a new service. notifier may be nil when alerts are
// disabled.
func NewService(store Store, notifier Notifier, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, notifier: notifier, log: log, config: cfg, now: time.Now}
}

// Today is the current date in UTC
func (s *Service) Today() time.Time {
	return forecast.Day(s.now())
}

// DefaultParams returns the configured forecast parameters starting today
func (s *Service) DefaultParams() forecast.Params {
	return forecast.Params{
		StartDate:       s.Today(),
		MonthsToProject: s.config.ForecastMonths,
		Buffer:          decimal.NewFromFloat(s.config.ForecastBuffer),
	}
}

// ParseForecastParams builds forecast parameters from raw query values
func (s *Service) ParseForecastParams(startDate, months, buffer string) (forecast.Params, error) {
	return forecast.ParseParams(s.DefaultParams(), startDate, months, buffer)
}

// Forecast projects the household cash balance. Store failures are reported
// as forecast.ErrComputation.
func (s *Service) Forecast(ctx context.Context, householdID int64, p forecast.Params) (*forecast.Result, error) {
	started := time.Now()
	res, err := s.forecast(ctx, householdID, p)
	metrics.ObserveForecast(metrics.ResultFor(err), time.Since(started))
	if err != nil {
		s.log.WithError(err).WithField("household_id", householdID).Warn("Forecast failed")
		return nil, err
	}

	metrics.IncBufferStatus(res.BufferStatus)
	s.log.WithFields(logrus.Fields{
		"household_id":     householdID,
		"start_date":       forecast.FormatDate(res.StartDate),
		"months":           p.MonthsToProject,
		"events":           len(res.Events),
		"expected_minimum": res.ExpectedMinimum.StringFixed(2),
		"buffer_status":    res.BufferStatus,
	}).Info("Forecast generated")
	return res, nil
}

func (s *Service) forecast(ctx context.Context, householdID int64, p forecast.Params) (*forecast.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.MonthsToProject > s.config.ForecastMaxMonths {
		return nil, fmt.Errorf("%w: months_to_project must not exceed %d, got %d",
			forecast.ErrInvalidParameter, s.config.ForecastMaxMonths, p.MonthsToProject)
	}

	in, err := s.loadInput(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return forecast.Generate(in, p)
}

func (s *Service) loadInput(ctx context.Context, householdID int64) (forecast.Input, error) {
	var (
		in  forecast.Input
		err error
	)
	if in.Bills, err = s.store.GetActiveBills(ctx, householdID); err != nil {
		return forecast.Input{}, fmt.Errorf("%w: %w", forecast.ErrComputation, err)
	}
	if in.RecurringFunds, err = s.store.GetRecurringFunds(ctx, householdID); err != nil {
		return forecast.Input{}, fmt.Errorf("%w: %w", forecast.ErrComputation, err)
	}
	if in.CashFunds, err = s.store.GetCashFunds(ctx, householdID); err != nil {
		return forecast.Input{}, fmt.Errorf("%w: %w", forecast.ErrComputation, err)
	}
	if in.Incomes, err = s.store.GetIncomes(ctx, householdID); err != nil {
		return forecast.Input{}, fmt.Errorf("%w: %w", forecast.ErrComputation, err)
	}
	return in, nil
}

// UpcomingBills lists the bills due within days of start along with totals
func (s *Service) UpcomingBills(ctx context.Context, householdID int64, start time.Time, days int) (models.BillSchedule, error) {
	if days < 0 {
		return models.BillSchedule{}, fmt.Errorf("%w: days must not be negative, got %d", forecast.ErrInvalidParameter, days)
	}

	bills, err := s.store.GetActiveBills(ctx, householdID)
	if err != nil {
		return models.BillSchedule{}, err
	}

	schedule := forecast.ScheduleResponse(forecast.UpcomingBills(bills, start, days), days)
	s.log.Debugf("Bill schedule for household %d: %d bills over %d days", householdID, len(schedule.UpcomingBills), days)
	return schedule, nil
}
