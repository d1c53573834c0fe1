package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/dbx"
	"github.com/gauravjot/my-it-tools/internal/server/models"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/repomanager"
)

// Tracker validation errors. All wrap common.ErrorInvalidInput so callers can
// match the category or the specific field.
var (
	ErrInvalidAmount         = fmt.Errorf("%w: amount", common.ErrorInvalidInput)
	ErrInvalidDate           = fmt.Errorf("%w: date", common.ErrorInvalidInput)
	ErrInvalidRepeatInterval = fmt.Errorf("%w: repeat interval", common.ErrorInvalidInput)
)

const trackerDateLayout = "2006-01-02"

// ExpenseInput is the client-supplied expense payload. Amount and Date arrive
// as strings and are validated here so the error codes stay in one place.
type ExpenseInput struct {
	Name           string
	Amount         string
	Date           string
	Repeat         bool
	RepeatInterval string
	Tags           []string
}

// TrackerService implements the income/expense ledger. Every operation is
// scoped to the authenticated user.
type TrackerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTrackerService(db *sql.DB, m repomanager.RepositoryManager) *TrackerService {
	return &TrackerService{db: db, repomanager: m}
}

func (s *TrackerService) AddIncome(ctx context.Context, userID, name, amount, date string) (*models.Income, error) {
	parsedAmount, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	parsedDate, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	income := &models.Income{
		UserID: userID,
		Name:   name,
		Amount: parsedAmount,
		Date:   parsedDate,
	}
	income, err = s.repomanager.Incomes(s.db).Create(ctx, income)
	if err != nil {
		return nil, fmt.Errorf("error creating income: %v", err)
	}
	return income, nil
}

func (s *TrackerService) ListIncomes(ctx context.Context, userID, from, to string) ([]*models.Income, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Incomes(s.db).ListRange(ctx, userID, start, end)
}

// AddExpense validates the payload and creates the expense together with its
// tags in one transaction.
func (s *TrackerService) AddExpense(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.expenseFromInput(userID, in)
	if err != nil {
		return nil, err
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Expenses(tx).Create(ctx, expense)
		if err != nil {
			return err
		}
		expense = created
		return s.createTags(ctx, tx, expense, in.Tags)
	}); err != nil {
		return nil, fmt.Errorf("error creating expense: %v", err)
	}
	return expense, nil
}

func (s *TrackerService) ListExpenses(ctx context.Context, userID, from, to string) ([]*models.Expense, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Expenses(s.db).ListRange(ctx, userID, start, end)
}

// UpdateExpense rewrites an owned expense. Tags are resolved by name: an
// existing tag is reused, a new name creates one. A foreign or missing id is
// ErrorNotFound.
func (s *TrackerService) UpdateExpense(ctx context.Context, userID string, id int64, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.expenseFromInput(userID, in)
	if err != nil {
		return nil, err
	}
	expense.ID = id

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Expenses(tx)
		if err := repo.Update(ctx, expense); err != nil {
			return err
		}
		for _, name := range in.Tags {
			if name == "" {
				continue
			}
			_, err := repo.FindTagByName(ctx, userID, name)
			if err == nil {
				continue
			}
			if !errors.Is(err, common.ErrorNotFound) {
				return err
			}
			tag := &models.ExpenseTag{UserID: userID, ExpenseID: id, Name: name}
			if _, err := repo.CreateTag(ctx, tag); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating expense: %v", err)
	}
	return s.repomanager.Expenses(s.db).Get(ctx, id, userID)
}

func (s *TrackerService) DeleteExpense(ctx context.Context, userID string, id int64) error {
	return s.repomanager.Expenses(s.db).Delete(ctx, id, userID)
}

func (s *TrackerService) ListTags(ctx context.Context, userID string) ([]*models.ExpenseTag, error) {
	return s.repomanager.Expenses(s.db).ListTags(ctx, userID)
}

func (s *TrackerService) expenseFromInput(userID string, in ExpenseInput) (*models.Expense, error) {
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	interval := in.RepeatInterval
	if interval == "" {
		interval = models.RepeatMonthly
	}
	if !models.ValidRepeatInterval(interval) {
		return nil, ErrInvalidRepeatInterval
	}
	return &models.Expense{
		UserID:         userID,
		Name:           in.Name,
		Amount:         amount,
		Date:           date,
		Repeat:         in.Repeat,
		RepeatInterval: interval,
	}, nil
}

func (s *TrackerService) createTags(ctx context.Context, tx dbx.DBTX, expense *models.Expense, tags []string) error {
	repo := s.repomanager.Expenses(tx)
	for _, name := range tags {
		if name == "" {
			continue
		}
		tag := &models.ExpenseTag{UserID: expense.UserID, ExpenseID: expense.ID, Name: name}
		created, err := repo.CreateTag(ctx, tag)
		if err != nil {
			return err
		}
		expense.Tags = append(expense.Tags, *created)
	}
	return nil
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(trackerDateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	start, err := parseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
