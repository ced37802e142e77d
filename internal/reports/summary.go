// Package reports computes read-side aggregates over transaction lists.
//
// Everything here is pure: callers fetch the rows, these functions fold
// them. All sums run on integer cents.
package reports

import (
	"errors"
	"sort"
	"time"

	"financas/internal/core"
)

// ErrInvalidWindow is returned when a window's end precedes its start.
var ErrInvalidWindow = errors.New("invalid report window")

// Window is a half-open date interval [Start, End).
type Window struct {
	Start core.Date
	End   core.Date
}

// MonthWindow covers the calendar month containing t.
func MonthWindow(t time.Time) Window {
	start := core.NewDate(t.Year(), int(t.Month()), 1)
	return Window{Start: start, End: core.Date{Time: start.AddDate(0, 1, 0)}}
}

// NextDays covers [today, today+days) starting at t's calendar day.
func NextDays(t time.Time, days int) Window {
	start := core.DateOf(t)
	return Window{Start: start, End: core.Date{Time: start.AddDate(0, 0, days)}}
}

func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return ErrInvalidWindow
	}
	if w.End.Before(w.Start.Time) {
		return ErrInvalidWindow
	}
	return nil
}

// Contains reports whether d falls inside the half-open interval.
func (w Window) Contains(d core.Date) bool {
	return !d.Before(w.Start.Time) && d.Before(w.End.Time)
}

// LastDay returns the final day covered by the window. Storage date
// filters treat their upper bound as inclusive, so they take this
// rather than End.
func (w Window) LastDay() core.Date {
	return core.Date{Time: w.End.AddDate(0, 0, -1)}
}

// Summary is the dashboard headline block for one window.
type Summary struct {
	TotalIncome        core.Money
	TotalExpenses      core.Money
	Balance            core.Money
	IncomeCount        int
	ExpenseCount       int
	UpcomingBillsCount int
	UpcomingBillsTotal core.Money
	SavingsRate        float64 // percentage, 0 when there is no income
}

// Summarize folds paid transactions inside the window into totals, and
// counts unpaid expenses whose effective due date falls in billWindow.
func Summarize(txs []core.Transaction, window, billWindow Window) (Summary, error) {
	if err := window.Validate(); err != nil {
		return Summary{}, err
	}
	if err := billWindow.Validate(); err != nil {
		return Summary{}, err
	}

	var s Summary
	for _, tx := range txs {
		if tx.IsPaid && window.Contains(tx.Date) {
			switch tx.Type {
			case core.Income:
				s.TotalIncome.Cents += tx.Amount.Cents
				s.IncomeCount++
			case core.Expense:
				s.TotalExpenses.Cents += tx.Amount.Cents
				s.ExpenseCount++
			}
		}
		if tx.Type == core.Expense && !tx.IsPaid && billWindow.Contains(tx.EffectiveDueDate()) {
			s.UpcomingBillsCount++
			s.UpcomingBillsTotal.Cents += tx.Amount.Cents
		}
	}

	s.Balance.Cents = s.TotalIncome.Cents - s.TotalExpenses.Cents
	if s.TotalIncome.Cents > 0 {
		s.SavingsRate = float64(s.Balance.Cents) / float64(s.TotalIncome.Cents) * 100
	}
	return s, nil
}

// CategoryTotal is one row of the category breakdown.
type CategoryTotal struct {
	CategoryID string // empty for the uncategorized bucket
	Name       string
	Color      string
	Income     core.Money
	Expenses   core.Money
	Count      int
}

// UncategorizedColor is the display color for transactions without a category.
const UncategorizedColor = "#6366F1"

// ByCategory groups paid transactions inside the window by category.
// Transactions without a category land in an "Uncategorized" bucket.
// Categories with no activity in the window are omitted. Buckets come
// back sorted by total activity, largest first.
func ByCategory(txs []core.Transaction, cats []core.Category, window Window) ([]CategoryTotal, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	names := make(map[string]core.Category, len(cats))
	for _, c := range cats {
		names[c.ID] = c
	}

	buckets := map[string]*CategoryTotal{}
	for _, tx := range txs {
		if !tx.IsPaid || !window.Contains(tx.Date) {
			continue
		}
		key := tx.CategoryID
		b, ok := buckets[key]
		if !ok {
			b = &CategoryTotal{CategoryID: key, Name: "Uncategorized", Color: UncategorizedColor}
			if c, known := names[key]; known {
				b.Name = c.Name
				b.Color = c.Color
			}
			buckets[key] = b
		}
		switch tx.Type {
		case core.Income:
			b.Income.Cents += tx.Amount.Cents
		case core.Expense:
			b.Expenses.Cents += tx.Amount.Cents
		}
		b.Count++
	}

	out := make([]CategoryTotal, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		ti := out[i].Income.Cents + out[i].Expenses.Cents
		tj := out[j].Income.Cents + out[j].Expenses.Cents
		if ti != tj {
			return ti > tj
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
