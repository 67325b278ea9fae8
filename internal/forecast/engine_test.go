package forecast

import (
	"testing"
	"time"

	"github.com/Dan9191/budget-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func params(start time.Time, months int, buffer string) Params {
	return Params{StartDate: start, MonthsToProject: months, Buffer: dec(buffer)}
}

func recurringFund(id int64, name, amount string, next time.Time) models.Fund {
	return models.Fund{
		ID:              id,
		Name:            name,
		FundType:        models.FundTypeExpenses,
		RecurringAmount: decimal.NewNullDecimal(dec(amount)),
		NextDepositDate: &next,
	}
}

// householdInput mixes every source kind. Starting 2025-10-20 (a Monday) for
// one month the stream is:
//
//	2025-10-24 Streaming -15.49, Vacation -50, Paycheck +600
//	2025-11-01 Rent -900
//	2025-11-07 Vacation -50, Paycheck +600
func householdInput() Input {
	return Input{
		Bills: []models.Bill{
			{ID: 1, Name: "Rent", Amount: dec("900"), DueDate: date(2025, time.October, 1), Frequency: "monthly", Category: "Housing", IsActive: true},
			{ID: 2, Name: "Streaming", Amount: dec("15.49"), DueDate: date(2025, time.October, 24), Frequency: "fortnightly", Category: "Subscriptions", IsAutopay: true, IsActive: true},
		},
		RecurringFunds: []models.Fund{
			recurringFund(10, "Vacation", "50", date(2025, time.October, 10)),
		},
		CashFunds: []models.Fund{
			{ID: 20, Name: "Wallet", Balance: dec("1000"), FundType: models.FundTypeCash},
			{ID: 21, Name: "Checking buffer", Balance: dec("250.50"), FundType: models.FundTypeCash},
			{ID: 22, Name: "Rainy day", Balance: dec("5000"), FundType: models.FundTypeSavings},
		},
		Incomes: []models.Income{
			{ID: 30, Source: "Paycheck", Amount: dec("600"), Date: date(2025, time.September, 1)},
		},
	}
}

func TestGenerate_MixedHousehold(t *testing.T) {
	start := date(2025, time.October, 20)
	res, err := Generate(householdInput(), params(start, 1, "100"))
	require.NoError(t, err)

	type row struct {
		date    time.Time
		label   string
		kind    EventKind
		amount  string
		balance string
	}
	want := []row{
		{date(2025, time.October, 24), "Streaming (Bill)", KindBillPayment, "-15.49", "1235.01"},
		{date(2025, time.October, 24), "Vacation Deposit", KindFundDeposit, "-50", "1185.01"},
		{date(2025, time.October, 24), "Paycheck (Income)", KindIncome, "600", "1785.01"},
		{date(2025, time.November, 1), "Rent (Bill)", KindBillPayment, "-900", "885.01"},
		{date(2025, time.November, 7), "Vacation Deposit", KindFundDeposit, "-50", "835.01"},
		{date(2025, time.November, 7), "Paycheck (Income)", KindIncome, "600", "1435.01"},
	}
	require.Len(t, res.Events, len(want))
	for i, w := range want {
		e := res.Events[i]
		assert.Equal(t, w.date, e.Date, "event %d date", i)
		assert.Equal(t, w.label, e.Label, "event %d label", i)
		assert.Equal(t, w.kind, e.Kind, "event %d kind", i)
		assert.True(t, dec(w.amount).Equal(e.Amount), "event %d amount: got %s", i, e.Amount)
		assert.True(t, dec(w.balance).Equal(e.Balance), "event %d balance: got %s", i, e.Balance)
	}

	assert.True(t, dec("1250.50").Equal(res.StartingBalance))
	assert.True(t, dec("835.01").Equal(res.ExpectedMinimum))
	assert.Equal(t, date(2025, time.November, 7), res.MinBalanceDate)
	assert.Equal(t, models.BufferStatusOK, res.BufferStatus)
	assert.True(t, res.ExtraPaymentNeeded.IsZero())
	assert.True(t, dec("735.01").Equal(res.ActualMinimum))

	require.NotNil(t, res.NextPayDate)
	assert.Equal(t, date(2025, time.October, 24), *res.NextPayDate)
	require.True(t, res.ExpectedBalanceNextPay.Valid)
	assert.True(t, dec("1785.01").Equal(res.ExpectedBalanceNextPay.Decimal))

	require.Len(t, res.UpcomingBills, 1)
	assert.Equal(t, "Streaming", res.UpcomingBills[0].Bill.Name)
	assert.Equal(t, date(2025, time.October, 24), res.UpcomingBills[0].Date)
}

func TestGenerate_BufferDrivesStatusAndExtraPayment(t *testing.T) {
	start := date(2025, time.October, 20)

	res, err := Generate(householdInput(), params(start, 1, "600"))
	require.NoError(t, err)
	assert.Equal(t, models.BufferStatusWarning, res.BufferStatus)
	assert.True(t, res.ExtraPaymentNeeded.IsZero())

	res, err = Generate(householdInput(), params(start, 1, "1000"))
	require.NoError(t, err)
	assert.Equal(t, models.BufferStatusDanger, res.BufferStatus)
	assert.True(t, dec("164.99").Equal(res.ExtraPaymentNeeded), "got %s", res.ExtraPaymentNeeded)
	assert.True(t, dec("-164.99").Equal(res.ActualMinimum), "got %s", res.ActualMinimum)
}

func TestGenerate_SingleBillScenario(t *testing.T) {
	start := date(2025, time.October, 22)
	in := Input{
		Bills: []models.Bill{
			{ID: 1, Name: "Mortgage", Amount: dec("1200"), DueDate: start.AddDate(0, 0, 3), Frequency: "monthly", Category: "Housing", IsActive: true},
		},
		CashFunds: []models.Fund{{ID: 2, Name: "Cash", Balance: dec("2000"), FundType: models.FundTypeCash}},
	}

	res, err := Generate(in, params(start, 1, "100"))
	require.NoError(t, err)

	resp := res.Response()
	require.Len(t, resp.Projection, 1)
	assert.Equal(t, "2025-10-25", resp.Projection[0].Date)
	assert.Equal(t, "Mortgage (Bill)", resp.Projection[0].Event)
	assert.Equal(t, "bill_payment", resp.Projection[0].Type)
	assert.Equal(t, -1200.0, resp.Projection[0].Amount)
	assert.Equal(t, 800.0, resp.Projection[0].ExpectedBalance)

	assert.Equal(t, 2000.0, resp.Summary.StartingBalance)
	assert.Equal(t, 800.0, resp.Summary.ExpectedMinimum)
	assert.Equal(t, 700.0, resp.Summary.ActualMinimum)
	assert.Equal(t, 0.0, resp.Summary.ExtraPaymentNeeded)
	assert.Equal(t, "OK", resp.Summary.BufferStatus)
	assert.Equal(t, "2025-10-25", resp.Summary.MinBalanceDate)
	assert.Nil(t, resp.Summary.NextPayDate)
	assert.Nil(t, resp.Summary.ExpectedBalanceNextPay)
	require.Len(t, resp.Summary.UpcomingBills, 1)
	assert.Equal(t, "2025-10-25", resp.Summary.UpcomingBills[0].DueDate)
}

func TestGenerate_EmptyHouseholdIsDegenerate(t *testing.T) {
	start := date(2025, time.October, 20)
	in := Input{CashFunds: []models.Fund{{Balance: dec("120"), FundType: models.FundTypeCash}}}

	res, err := Generate(in, params(start, 3, "100"))
	require.NoError(t, err)

	assert.Empty(t, res.Events)
	assert.True(t, dec("120").Equal(res.ExpectedMinimum))
	assert.Equal(t, start, res.MinBalanceDate)
	assert.Equal(t, models.BufferStatusWarning, res.BufferStatus)
	assert.Nil(t, res.NextPayDate)
	assert.False(t, res.ExpectedBalanceNextPay.Valid)

	resp := res.Response()
	assert.NotNil(t, resp.Projection)
	assert.Empty(t, resp.Projection)
	assert.NotNil(t, resp.Summary.UpcomingBills)
}

func TestGenerate_RejectsInvalidParams(t *testing.T) {
	start := date(2025, time.October, 20)

	_, err := Generate(Input{}, params(start, -1, "100"))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Generate(Input{}, params(start, 1, "-5"))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Generate(Input{}, params(time.Time{}, 1, "100"))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGenerate_IsDeterministic(t *testing.T) {
	start := date(2025, time.October, 20)
	first, err := Generate(householdInput(), params(start, 3, "100"))
	require.NoError(t, err)
	second, err := Generate(householdInput(), params(start, 3, "100"))
	require.NoError(t, err)

	assert.Equal(t, first.Response(), second.Response())
}

func TestGenerate_ProjectionInvariants(t *testing.T) {
	start := date(2025, time.January, 30)
	in := householdInput()
	in.Bills = append(in.Bills,
		models.Bill{ID: 3, Name: "Gym", Amount: dec("35"), DueDate: date(2025, time.January, 31), Frequency: "monthly", IsActive: true},
		models.Bill{ID: 4, Name: "Insurance", Amount: dec("410.25"), DueDate: date(2024, time.November, 15), Frequency: "quarterly", IsActive: true},
		models.Bill{ID: 5, Name: "Lunch", Amount: dec("22.40"), DueDate: date(2025, time.January, 6), Frequency: "weekly", IsActive: true},
	)

	res, err := Generate(in, params(start, 6, "100"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Events)

	running := res.StartingBalance
	minimum := res.StartingBalance
	minDate := res.StartDate
	total := decimal.Zero
	for i, e := range res.Events {
		if i > 0 {
			assert.False(t, e.Date.Before(res.Events[i-1].Date), "event %d out of order", i)
		}
		assert.False(t, e.Date.Before(res.StartDate))
		assert.False(t, e.Date.After(res.EndDate))

		running = running.Add(e.Amount)
		assert.True(t, running.Equal(e.Balance), "event %d balance", i)
		if running.LessThan(minimum) {
			minimum, minDate = running, e.Date
		}
		total = total.Add(e.Amount)
	}

	last := res.Events[len(res.Events)-1]
	assert.True(t, res.StartingBalance.Add(total).Equal(last.Balance))
	assert.True(t, minimum.Equal(res.ExpectedMinimum))
	assert.Equal(t, minDate, res.MinBalanceDate)
}

func TestGenerate_MonthEndBillClamps(t *testing.T) {
	start := date(2025, time.January, 30)
	in := Input{Bills: []models.Bill{
		{ID: 1, Name: "Loan", Amount: dec("100"), DueDate: date(2025, time.January, 31), Frequency: "monthly", IsActive: true},
	}}

	res, err := Generate(in, params(start, 2, "0"))
	require.NoError(t, err)

	var dates []time.Time
	for _, e := range res.Events {
		dates = append(dates, e.Date)
	}
	assert.Equal(t, []time.Time{
		date(2025, time.January, 31),
		date(2025, time.February, 28),
		date(2025, time.March, 28),
	}, dates)
}

func TestGenerate_FutureBillAppearsOnceAtItsDueDate(t *testing.T) {
	start := date(2025, time.October, 20)
	due := start.AddDate(0, 0, 5)
	in := Input{Bills: []models.Bill{
		{ID: 1, Name: "Water", Amount: dec("60"), DueDate: due, Frequency: "monthly", IsActive: true},
	}}

	res, err := Generate(in, params(start, 1, "100"))
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, due, res.Events[0].Date)
}

func TestGenerate_SkippedFundContributesNothing(t *testing.T) {
	start := date(2025, time.October, 20)
	fund := recurringFund(1, "Car", "75", start)
	fund.SkipNext = true

	res, err := Generate(Input{RecurringFunds: []models.Fund{fund}}, params(start, 3, "100"))
	require.NoError(t, err)
	assert.Empty(t, res.Events)
}

func TestGenerate_InactiveBillsIgnored(t *testing.T) {
	start := date(2025, time.October, 20)
	in := Input{Bills: []models.Bill{
		{ID: 1, Name: "Old plan", Amount: dec("20"), DueDate: start.AddDate(0, 0, 2), Frequency: "monthly", IsActive: false},
	}}

	res, err := Generate(in, params(start, 1, "100"))
	require.NoError(t, err)
	assert.Empty(t, res.Events)
	assert.Empty(t, res.UpcomingBills)
}

func TestGenerate_UpcomingBillsMatchProjectedPayments(t *testing.T) {
	start := date(2025, time.October, 20)
	in := householdInput()
	in.Bills = append(in.Bills,
		models.Bill{ID: 3, Name: "Due today", Amount: dec("10"), DueDate: start, Frequency: "weekly", IsActive: true},
		models.Bill{ID: 4, Name: "Phone", Amount: dec("45"), DueDate: date(2025, time.September, 26), Frequency: "monthly", IsActive: true},
	)

	res, err := Generate(in, params(start, 1, "100"))
	require.NoError(t, err)

	windowEnd := start.AddDate(0, 0, DefaultUpcomingBillsDays)
	var projected []Occurrence
	for _, e := range res.Events {
		if e.Kind != KindBillPayment || e.Date.After(windowEnd) {
			continue
		}
		for _, b := range in.Bills {
			if b.ID == e.SourceID {
				projected = append(projected, Occurrence{Bill: b, Date: e.Date})
			}
		}
	}

	assert.ElementsMatch(t, projected, res.UpcomingBills)
	assert.Len(t, res.UpcomingBills, 3)
}

func TestFold_FirstMinimumWins(t *testing.T) {
	events := []Event{
		{Date: date(2025, time.March, 1), Amount: dec("-100")},
		{Date: date(2025, time.March, 2), Amount: dec("100")},
		{Date: date(2025, time.March, 3), Amount: dec("-100")},
	}

	l := fold(events, dec("500"), date(2025, time.February, 28))
	assert.True(t, dec("400").Equal(l.minimum))
	assert.Equal(t, date(2025, time.March, 1), l.minimumDate)
	assert.True(t, dec("400").Equal(l.balance))
}

func TestBufferStatus_Tiers(t *testing.T) {
	tests := []struct {
		minimum string
		want    string
	}{
		{"200", models.BufferStatusOK},
		{"150", models.BufferStatusOK},
		{"149.99", models.BufferStatusWarning},
		{"100", models.BufferStatusWarning},
		{"99.99", models.BufferStatusDanger},
		{"-50", models.BufferStatusDanger},
	}

	for _, tt := range tests {
		t.Run(tt.minimum, func(t *testing.T) {
			assert.Equal(t, tt.want, BufferStatus(dec(tt.minimum), dec("100")))
		})
	}
}

func TestExtraPaymentNeeded(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(ExtraPaymentNeeded(dec("150"), dec("100"))))
	assert.True(t, decimal.Zero.Equal(ExtraPaymentNeeded(dec("100"), dec("100"))))
	assert.True(t, dec("0.01").Equal(ExtraPaymentNeeded(dec("99.99"), dec("100"))))
	assert.True(t, dec("350").Equal(ExtraPaymentNeeded(dec("-250"), dec("100"))))
}

func TestSeedBalance_OnlyCashFunds(t *testing.T) {
	funds := []models.Fund{
		{Balance: dec("10.10"), FundType: models.FundTypeCash},
		{Balance: dec("99"), FundType: models.FundTypeSavings},
		{Balance: dec("0.90"), FundType: models.FundTypeCash},
	}
	assert.True(t, dec("11").Equal(SeedBalance(funds)))
}
