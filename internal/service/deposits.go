package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/budget-service/internal/forecast"
	"github.com/Dan9191/budget-service/internal/metrics"
	"github.com/Dan9191/budget-service/internal/models"
	"github.com/shopspring/decimal"
)

// ApplyRecurringDeposit advances a fund whose deposit is due on today. A fund
// marked skip_next gives up exactly this occurrence: the flag is cleared and
// the schedule moves on without a deposit. It returns the amount deposited and
// whether the fund changed.
func ApplyRecurringDeposit(f *models.Fund, today time.Time) (decimal.Decimal, bool) {
	if !f.HasRecurringDeposit() {
		return decimal.Zero, false
	}
	today = forecast.Day(today)
	if f.NextDepositDate != nil && forecast.Day(*f.NextDepositDate).After(today) {
		return decimal.Zero, false
	}

	next := today.AddDate(0, 0, forecast.DepositInterval)
	f.NextDepositDate = &next
	if f.SkipNext {
		f.SkipNext = false
		return decimal.Zero, true
	}

	amount := f.RecurringAmount.Decimal
	f.Balance = f.Balance.Add(amount)
	return amount, true
}

// ProcessRecurringDeposits applies every due recurring deposit of a household.
// The funds are read and written back inside one locked transaction.
func (s *Service) ProcessRecurringDeposits(ctx context.Context, householdID int64) (models.RecurringDepositRun, error) {
	today := s.Today()
	run := models.RecurringDepositRun{Funds: []models.Fund{}}
	total := decimal.Zero

	err := s.store.ProcessFundDeposits(ctx, householdID, func(funds []models.Fund) ([]models.Fund, error) {
		for i := range funds {
			amount, changed := ApplyRecurringDeposit(&funds[i], today)
			if !changed {
				continue
			}
			if amount.IsPositive() {
				run.ProcessedFunds++
				total = total.Add(amount)
			} else {
				run.SkippedFunds++
			}
			run.Funds = append(run.Funds, funds[i])
		}
		return run.Funds, nil
	})
	if err != nil {
		return models.RecurringDepositRun{}, err
	}

	run.TotalAmount = forecast.Money(total)
	run.Message = fmt.Sprintf("Processed %d recurring deposits", run.ProcessedFunds)
	metrics.AddDeposits(run.ProcessedFunds)
	s.log.Infof("Recurring deposits for household %d: %d processed, %d skipped, total %s",
		householdID, run.ProcessedFunds, run.SkippedFunds, total.StringFixed(2))
	return run, nil
}

// ProcessAllRecurringDeposits runs ProcessRecurringDeposits for every
// household. A failing household does not stop the others.
func (s *Service) ProcessAllRecurringDeposits(ctx context.Context) error {
	ids, err := s.store.ListHouseholdIDs(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range ids {
		if _, err := s.ProcessRecurringDeposits(ctx, id); err != nil {
			s.log.WithError(err).Errorf("Recurring deposits failed for household %d", id)
			errs = append(errs, fmt.Errorf("household %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// ToggleSkip flips the skip_next flag of a household fund
func (s *Service) ToggleSkip(ctx context.Context, householdID, fundID int64) (*models.Fund, error) {
	fund, err := s.store.ToggleFundSkipNext(ctx, householdID, fundID)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Fund %d skip_next set to %t", fund.ID, fund.SkipNext)
	return fund, nil
}
