package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/budget-service/internal/models"
)

// ErrNotFound is returned when a requested row does not exist for the household
var ErrNotFound = errors.New("not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const fundColumns = `id, household_id, name, balance, fund_type, recurring_amount, next_deposit_date, skip_next`

// GetActiveBills retrieves the active bills of a household
func (r *Repository) GetActiveBills(ctx context.Context, householdID int64) ([]models.Bill, error) {
	query := `
		SELECT id, household_id, name, amount, due_date, COALESCE(frequency, 'monthly'), category, is_autopay, is_active
		FROM budget.bills
		WHERE household_id = $1 AND is_active = TRUE
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.HouseholdID, &b.Name, &b.Amount, &b.DueDate, &b.Frequency, &b.Category, &b.IsAutopay, &b.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}
	return bills, nil
}

// GetFunds retrieves every fund of a household
func (r *Repository) GetFunds(ctx context.Context, householdID int64) ([]models.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM budget.funds WHERE household_id = $1 ORDER BY id`
	return queryFunds(ctx, r.db, query, householdID)
}

// GetRecurringFunds retrieves funds that carry a positive recurring deposit
func (r *Repository) GetRecurringFunds(ctx context.Context, householdID int64) ([]models.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM budget.funds
		WHERE household_id = $1 AND recurring_amount IS NOT NULL AND recurring_amount > 0
		ORDER BY id`
	return queryFunds(ctx, r.db, query, householdID)
}

// GetCashFunds retrieves the Cash funds whose balances seed a forecast
func (r *Repository) GetCashFunds(ctx context.Context, householdID int64) ([]models.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM budget.funds WHERE household_id = $1 AND fund_type = $2 ORDER BY id`
	return queryFunds(ctx, r.db, query, householdID, models.FundTypeCash)
}

// ToggleFundSkipNext flips the skip_next flag of a fund and returns the updated fund
func (r *Repository) ToggleFundSkipNext(ctx context.Context, householdID, fundID int64) (*models.Fund, error) {
	query := `
		UPDATE budget.funds SET skip_next = NOT skip_next
		WHERE id = $1 AND household_id = $2
		RETURNING ` + fundColumns
	fund, err := scanFund(r.db.QueryRowContext(ctx, query, fundID, householdID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("fund %d: %w", fundID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle skip_next: %w", err)
	}
	return fund, nil
}

// ProcessFundDeposits locks the recurring funds of a household with
// SELECT ... FOR UPDATE, passes them to apply and writes back the funds apply
// returns, all in one transaction. A concurrent skip toggle on the same fund
// waits for the commit instead of being overwritten.
func (r *Repository) ProcessFundDeposits(ctx context.Context, householdID int64, apply func([]models.Fund) ([]models.Fund, error)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + fundColumns + ` FROM budget.funds
		WHERE household_id = $1 AND recurring_amount IS NOT NULL AND recurring_amount > 0
		ORDER BY id
		FOR UPDATE`
	funds, err := queryFunds(ctx, tx, query, householdID)
	if err != nil {
		return err
	}

	changed, err := apply(funds)
	if err != nil {
		return err
	}

	update := `
		UPDATE budget.funds SET balance = $1, next_deposit_date = $2, skip_next = $3
		WHERE id = $4 AND household_id = $5`
	for _, f := range changed {
		if _, err := tx.ExecContext(ctx, update, f.Balance, f.NextDepositDate, f.SkipNext, f.ID, householdID); err != nil {
			return fmt.Errorf("failed to update fund %d: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fund deposits: %w", err)
	}
	return nil
}

// GetIncomes retrieves the income records of a household
func (r *Repository) GetIncomes(ctx context.Context, householdID int64) ([]models.Income, error) {
	query := `
		SELECT id, household_id, source, amount, date, category
		FROM budget.incomes
		WHERE household_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	defer rows.Close()

	var incomes []models.Income
	for rows.Next() {
		var i models.Income
		if err := rows.Scan(&i.ID, &i.HouseholdID, &i.Source, &i.Amount, &i.Date, &i.Category); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incomes: %w", err)
	}
	return incomes, nil
}

// ListHouseholdIDs retrieves the ids of all households
func (r *Repository) ListHouseholdIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM budget.households ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query households: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan household: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating households: %w", err)
	}
	return ids, nil
}

// GetHouseholdContacts retrieves verified member emails of a household
func (r *Repository) GetHouseholdContacts(ctx context.Context, householdID int64) ([]models.HouseholdContact, error) {
	query := `
		SELECT uh.household_id, u.username, u.email
		FROM budget.user_household uh
		JOIN budget.users u ON u.id = uh.user_id
		WHERE uh.household_id = $1 AND u.email_verified = TRUE
		ORDER BY u.id`
	rows, err := r.db.QueryContext(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query household contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.HouseholdContact
	for rows.Next() {
		var c models.HouseholdContact
		if err := rows.Scan(&c.HouseholdID, &c.Username, &c.Email); err != nil {
			return nil, fmt.Errorf("failed to scan household contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating household contacts: %w", err)
	}
	return contacts, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryFunds(ctx context.Context, q querier, query string, args ...any) ([]models.Fund, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query funds: %w", err)
	}
	defer rows.Close()

	var funds []models.Fund
	for rows.Next() {
		fund, err := scanFund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund: %w", err)
		}
		funds = append(funds, *fund)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating funds: %w", err)
	}
	return funds, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFund(row scanner) (*models.Fund, error) {
	var (
		f        models.Fund
		nextDate sql.NullTime
	)
	if err := row.Scan(&f.ID, &f.HouseholdID, &f.Name, &f.Balance, &f.FundType, &f.RecurringAmount, &nextDate, &f.SkipNext); err != nil {
		return nil, err
	}
	if nextDate.Valid {
		next := nextDate.Time
		f.NextDepositDate = &next
	}
	return &f, nil
}
