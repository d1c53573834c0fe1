package models

import "time"

// Repeat intervals accepted for recurring expenses.
const (
	RepeatDaily   = "daily"
	RepeatWeekly  = "weekly"
	RepeatMonthly = "monthly"
	RepeatYearly  = "yearly"
)

// ValidRepeatInterval reports whether s is one of the accepted intervals.
func ValidRepeatInterval(s string) bool {
	switch s {
	case RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}

type Income struct {
	ID      int64
	UserID  string
	Name    string
	Amount  float64
	Date    time.Time
	AddedAt time.Time
}

type Expense struct {
	ID             int64
	UserID         string
	Name           string
	Amount         float64
	Date           time.Time
	Repeat         bool
	RepeatInterval string
	AddedAt        time.Time
	Tags           []ExpenseTag
}

type ExpenseTag struct {
	ID        int64
	UserID    string
	ExpenseID int64
	Name      string
}
