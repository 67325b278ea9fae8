package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/budget-service/internal/forecast"
	"github.com/Dan9191/budget-service/internal/metrics"
	"github.com/Dan9191/budget-service/internal/models"
)

// CheckBuffers forecasts every household with the default parameters and
// emails the members of those in Danger. It returns the number of alerts sent.
func (s *Service) CheckBuffers(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, nil
	}

	ids, err := s.store.ListHouseholdIDs(ctx)
	if err != nil {
		return 0, err
	}

	var (
		sent int
		errs []error
	)
	for _, id := range ids {
		res, err := s.Forecast(ctx, id, s.DefaultParams())
		if err != nil {
			errs = append(errs, fmt.Errorf("household %d: %w", id, err))
			continue
		}
		if res.BufferStatus != models.BufferStatusDanger {
			continue
		}

		n, err := s.alertHousehold(ctx, id, res)
		sent += n
		if err != nil {
			errs = append(errs, fmt.Errorf("household %d: %w", id, err))
		}
	}
	return sent, errors.Join(errs...)
}

func (s *Service) alertHousehold(ctx context.Context, householdID int64, res *forecast.Result) (int, error) {
	contacts, err := s.store.GetHouseholdContacts(ctx, householdID)
	if err != nil {
		return 0, err
	}

	alert := models.BufferAlert{
		HouseholdID:        householdID,
		BufferStatus:       res.BufferStatus,
		ExpectedMinimum:    forecast.Money(res.ExpectedMinimum),
		Buffer:             forecast.Money(res.Buffer),
		ExtraPaymentNeeded: forecast.Money(res.ExtraPaymentNeeded),
		MinBalanceDate:     forecast.FormatDate(res.MinBalanceDate),
	}

	var (
		sent int
		errs []error
	)
	for _, c := range contacts {
		if err := s.notifier.SendBufferAlert(c.Email, c.Username, alert); err != nil {
			errs = append(errs, err)
			continue
		}
		sent++
		metrics.IncAlertSent()
	}
	s.log.Infof("Buffer alert for household %d sent to %d of %d members", householdID, sent, len(contacts))
	return sent, errors.Join(errs...)
}
