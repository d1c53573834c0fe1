package services

import (
	"context"
	"errors"
	"testing"

	"github.com/gauravjot/my-it-tools/internal/common"
)

func TestAddIncome_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	s := NewTrackerService(db, &fakeRepoManager{i: &fakeIncomesRepo{}})

	tests := []struct {
		name    string
		amount  string
		date    string
		wantErr error
	}{
		{"bad amount", "abc", "2024-05-01", ErrInvalidAmount},
		{"empty amount", "", "2024-05-01", ErrInvalidAmount},
		{"bad date", "12.5", "05/01/2024", ErrInvalidDate},
		{"empty date", "12.5", "", ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddIncome(context.Background(), "u1", "salary", tt.amount, tt.date)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, common.ErrorInvalidInput) {
				t.Fatalf("validation error must wrap ErrorInvalidInput, got %v", err)
			}
		})
	}
}

func TestAddIncome_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	repo := &fakeIncomesRepo{}
	s := NewTrackerService(db, &fakeRepoManager{i: repo})

	income, err := s.AddIncome(context.Background(), "u1", "salary", "5000.50", "2024-05-01")
	if err != nil {
		t.Fatalf("AddIncome error: %v", err)
	}
	if income.Amount != 5000.50 || income.ID == 0 {
		t.Fatalf("unexpected income: %+v", income)
	}
}

func TestAddExpense_InvalidRepeatInterval(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	s := NewTrackerService(db, &fakeRepoManager{e: newFakeExpensesRepo()})

	_, err := s.AddExpense(context.Background(), "u1", ExpenseInput{
		Name: "rent", Amount: "1200", Date: "2024-05-01",
		Repeat: true, RepeatInterval: "fortnightly",
	})
	if !errors.Is(err, ErrInvalidRepeatInterval) {
		t.Fatalf("want ErrInvalidRepeatInterval, got %v", err)
	}
}

func TestAddExpense_CreatesTags(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeExpensesRepo()
	s := NewTrackerService(db, &fakeRepoManager{e: repo})

	expense, err := s.AddExpense(context.Background(), "u1", ExpenseInput{
		Name: "groceries", Amount: "42.50", Date: "2024-05-01",
		Tags: []string{"food", "", "weekly"},
	})
	if err != nil {
		t.Fatalf("AddExpense error: %v", err)
	}
	if expense.RepeatInterval != "monthly" {
		t.Fatalf("empty interval not defaulted: %q", expense.RepeatInterval)
	}
	if len(expense.Tags) != 2 {
		t.Fatalf("want 2 tags (empty skipped), got %+v", expense.Tags)
	}
}

func TestUpdateExpense_NotOwned(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := newFakeExpensesRepo()
	s := NewTrackerService(db, &fakeRepoManager{e: repo})

	_, err := s.UpdateExpense(context.Background(), "u1", 404, ExpenseInput{
		Name: "rent", Amount: "1200", Date: "2024-05-01",
	})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestUpdateExpense_ReusesExistingTag(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeExpensesRepo()
	s := NewTrackerService(db, &fakeRepoManager{e: repo})

	created, err := s.AddExpense(context.Background(), "u1", ExpenseInput{
		Name: "groceries", Amount: "40", Date: "2024-05-01", Tags: []string{"food"},
	})
	if err != nil {
		t.Fatalf("AddExpense error: %v", err)
	}

	updated, err := s.UpdateExpense(context.Background(), "u1", created.ID, ExpenseInput{
		Name: "groceries+", Amount: "45", Date: "2024-05-02", Tags: []string{"food", "organic"},
	})
	if err != nil {
		t.Fatalf("UpdateExpense error: %v", err)
	}
	if updated.Name != "groceries+" || updated.Amount != 45 {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if len(repo.tags) != 2 {
		t.Fatalf("existing tag duplicated: %+v", repo.tags)
	}
}

func TestDeleteExpense_NotOwned(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	s := NewTrackerService(db, &fakeRepoManager{e: newFakeExpensesRepo()})

	if err := s.DeleteExpense(context.Background(), "u1", 404); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestListIncomes_BadRange(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	s := NewTrackerService(db, &fakeRepoManager{i: &fakeIncomesRepo{}})

	if _, err := s.ListIncomes(context.Background(), "u1", "2024-05-01", "nope"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
}
