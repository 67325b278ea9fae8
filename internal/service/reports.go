package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/budget-service/internal/forecast"
	"github.com/Dan9191/budget-service/internal/models"
	"github.com/shopspring/decimal"
)

// Health statuses
const (
	HealthExcellent = "Excellent"
	HealthGood      = "Good"
	HealthFair      = "Fair"
	HealthPoor      = "Poor"
)

const (
	summaryMonths = 1
	healthMonths  = 6
)

var (
	excellentRatio = decimal.RequireFromString("0.3")
	goodRatio      = decimal.RequireFromString("0.15")
	fairRatio      = decimal.RequireFromString("0.05")
)

// Summary reports fund balances and a one month forecast digest. A failed
// forecast still yields a report with an Unknown buffer status.
func (s *Service) Summary(ctx context.Context, householdID int64) (models.SummaryReport, error) {
	funds, err := s.store.GetFunds(ctx, householdID)
	if err != nil {
		return models.SummaryReport{}, err
	}

	report := models.SummaryReport{
		TotalBalance: forecast.Money(totalBalance(funds)),
		Funds:        make([]models.FundBalance, 0, len(funds)),
		ForecastSummary: models.ForecastDigest{
			UpcomingBills: []models.UpcomingBill{},
			BufferStatus:  models.BufferStatusUnknown,
		},
	}
	for _, f := range funds {
		report.Funds = append(report.Funds, models.FundBalance{
			ID:       f.ID,
			Name:     f.Name,
			Balance:  forecast.Money(f.Balance),
			FundType: f.FundType,
		})
	}

	p := s.DefaultParams()
	p.MonthsToProject = summaryMonths
	res, err := s.Forecast(ctx, householdID, p)
	if err != nil {
		s.log.WithError(err).Warnf("Summary for household %d falls back without forecast", householdID)
		return report, nil
	}

	summary := res.Response().Summary
	report.ForecastSummary = models.ForecastDigest{
		UpcomingBills:      summary.UpcomingBills,
		ExpectedBalance:    summary.ExpectedBalanceNextPay,
		ExtraPaymentNeeded: summary.ExtraPaymentNeeded,
		BufferStatus:       summary.BufferStatus,
		NextPayDate:        summary.NextPayDate,
	}
	return report, nil
}

// FinancialHealth grades the household on its six month forecast and the
// share of its money held as cash.
func (s *Service) FinancialHealth(ctx context.Context, householdID int64) (models.FinancialHealth, error) {
	funds, err := s.store.GetFunds(ctx, householdID)
	if err != nil {
		return models.FinancialHealth{}, err
	}

	byType := map[string]decimal.Decimal{}
	for _, f := range funds {
		byType[f.FundType] = byType[f.FundType].Add(f.Balance)
	}
	cash := byType[models.FundTypeCash]
	savings := byType[models.FundTypeSavings]
	expenses := byType[models.FundTypeExpenses]
	total := cash.Add(savings).Add(expenses)

	p := s.DefaultParams()
	p.MonthsToProject = healthMonths
	res, err := s.Forecast(ctx, householdID, p)
	if err != nil {
		return models.FinancialHealth{}, err
	}

	ratio := cash.Div(decimal.Max(total, decimal.NewFromInt(1)))
	status := HealthStatus(res.BufferStatus, ratio)

	report := models.FinancialHealth{
		HealthStatus:       status,
		TotalBalance:       forecast.Money(total),
		CashFunds:          forecast.Money(cash),
		SavingsFunds:       forecast.Money(savings),
		ExpenseFunds:       forecast.Money(expenses),
		EmergencyFundRatio: ratio.Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64(),
		BufferStatus:       res.BufferStatus,
		ProjectedMinimum:   forecast.Money(res.ExpectedMinimum),
		ExtraPaymentNeeded: forecast.Money(res.ExtraPaymentNeeded),
	}
	report.Recommendations = Recommendations(status, ratio, res.BufferStatus, res.ExtraPaymentNeeded)

	s.log.Infof("Financial health for household %d: %s", householdID, status)
	return report, nil
}

// HealthStatus grades a buffer status and emergency fund ratio. The checks
// run in order and the first match wins.
func HealthStatus(bufferStatus string, ratio decimal.Decimal) string {
	switch {
	case bufferStatus == models.BufferStatusOK && ratio.GreaterThanOrEqual(excellentRatio):
		return HealthExcellent
	case bufferStatus == models.BufferStatusWarning || ratio.GreaterThanOrEqual(goodRatio):
		return HealthGood
	case bufferStatus == models.BufferStatusDanger || ratio.GreaterThanOrEqual(fairRatio):
		return HealthFair
	default:
		return HealthPoor
	}
}

// Recommendations lists advice for a graded household
func Recommendations(status string, ratio decimal.Decimal, bufferStatus string, extra decimal.Decimal) []string {
	var recs []string
	if ratio.LessThan(goodRatio) {
		recs = append(recs, "Consider building a larger emergency fund (cash reserves)")
	}
	if extra.IsPositive() {
		recs = append(recs, fmt.Sprintf("Consider adding $%s to maintain your buffer", extra.StringFixed(2)))
	}
	if bufferStatus == models.BufferStatusDanger {
		recs = append(recs, "Your projected balance is below the safety buffer - review upcoming expenses")
	}

	switch status {
	case HealthPoor:
		recs = append(recs, "Focus on reducing expenses and increasing income sources")
	case HealthFair:
		recs = append(recs, "You're on the right track - continue building your savings")
	case HealthGood:
		recs = append(recs, "Consider optimizing your fund allocations for better returns")
	default:
		recs = append(recs, "Excellent financial health - consider investment opportunities")
	}
	return recs
}

func totalBalance(funds []models.Fund) decimal.Decimal {
	total := decimal.Zero
	for _, f := range funds {
		total = total.Add(f.Balance)
	}
	return total
}
