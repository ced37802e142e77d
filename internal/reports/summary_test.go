package reports

import (
	"errors"
	"testing"
	"time"

	"financas/internal/core"
)

func tx(typ core.TransactionType, cents int64, date core.Date, paid bool) core.Transaction {
	return core.Transaction{Type: typ, Amount: core.Money{Cents: cents}, Date: date, IsPaid: paid}
}

func TestWindowValidate(t *testing.T) {
	ok := Window{Start: core.NewDate(2025, 1, 1), End: core.NewDate(2025, 2, 1)}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	inverted := Window{Start: core.NewDate(2025, 2, 1), End: core.NewDate(2025, 1, 1)}
	if err := inverted.Validate(); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(time.Date(2025, 2, 14, 18, 30, 0, 0, time.UTC))
	if w.Start.String() != "2025-02-01" {
		t.Fatalf("start: %s", w.Start)
	}
	if !w.Contains(core.NewDate(2025, 2, 28)) {
		t.Fatalf("last day of month must be inside")
	}
	if w.Contains(core.NewDate(2025, 3, 1)) {
		t.Fatalf("window is half-open")
	}
	if w.LastDay().String() != "2025-02-28" {
		t.Fatalf("last day: %s", w.LastDay())
	}
	if dec := MonthWindow(time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)); dec.LastDay().String() != "2025-12-31" {
		t.Fatalf("december last day: %s", dec.LastDay())
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	month := MonthWindow(now)
	week := NextDays(now, 7)

	unpaidBill := tx(core.Expense, 4000, core.NewDate(2025, 3, 10), false)
	unpaidBill.DueDate = core.NewDate(2025, 3, 17)

	txs := []core.Transaction{
		tx(core.Income, 500000, core.NewDate(2025, 3, 1), true),
		tx(core.Income, 100000, core.NewDate(2025, 3, 20), true),
		tx(core.Expense, 150000, core.NewDate(2025, 3, 5), true),
		tx(core.Expense, 99999, core.NewDate(2025, 2, 28), true), // outside window
		tx(core.Expense, 20000, core.NewDate(2025, 3, 8), false), // unpaid, excluded from totals
		unpaidBill,
	}

	s, err := Summarize(txs, month, week)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalIncome.Cents != 600000 {
		t.Fatalf("income: %d", s.TotalIncome.Cents)
	}
	if s.TotalExpenses.Cents != 150000 {
		t.Fatalf("expenses: %d", s.TotalExpenses.Cents)
	}
	if s.Balance.Cents != s.TotalIncome.Cents-s.TotalExpenses.Cents {
		t.Fatalf("balance identity broken: %d", s.Balance.Cents)
	}
	if s.UpcomingBillsCount != 1 || s.UpcomingBillsTotal.Cents != 4000 {
		t.Fatalf("upcoming bills: count=%d total=%d", s.UpcomingBillsCount, s.UpcomingBillsTotal.Cents)
	}
	if s.SavingsRate != 75 {
		t.Fatalf("savings rate: %f", s.SavingsRate)
	}
}

func TestSummarizeZeroIncome(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{tx(core.Expense, 1000, core.NewDate(2025, 3, 5), true)}
	s, err := Summarize(txs, MonthWindow(now), NextDays(now, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SavingsRate != 0 {
		t.Fatalf("savings rate must fall back to 0, got %f", s.SavingsRate)
	}
	if s.Balance.Cents != -1000 {
		t.Fatalf("balance: %d", s.Balance.Cents)
	}
}

func TestSummarizeRejectsInvalidWindow(t *testing.T) {
	bad := Window{Start: core.NewDate(2025, 2, 1), End: core.NewDate(2025, 1, 1)}
	now := time.Now()
	if _, err := Summarize(nil, bad, NextDays(now, 7)); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestByCategory(t *testing.T) {
	cats := []core.Category{
		{ID: "c1", Name: "Groceries", Color: "#22C55E", Type: core.Expense},
		{ID: "c2", Name: "Salary", Color: "#3B82F6", Type: core.Income},
		{ID: "c3", Name: "Idle", Color: "#000000", Type: core.Expense},
	}
	groceries1 := tx(core.Expense, 10000, core.NewDate(2025, 3, 2), true)
	groceries1.CategoryID = "c1"
	groceries2 := tx(core.Expense, 5000, core.NewDate(2025, 3, 9), true)
	groceries2.CategoryID = "c1"
	salary := tx(core.Income, 400000, core.NewDate(2025, 3, 1), true)
	salary.CategoryID = "c2"
	stray := tx(core.Expense, 2500, core.NewDate(2025, 3, 4), true) // no category

	window := MonthWindow(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	out, err := ByCategory([]core.Transaction{groceries1, groceries2, salary, stray}, cats, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 buckets (idle category omitted), got %d", len(out))
	}
	if out[0].Name != "Salary" {
		t.Fatalf("expected largest bucket first, got %s", out[0].Name)
	}

	var income, expenses int64
	byName := map[string]CategoryTotal{}
	for _, b := range out {
		income += b.Income.Cents
		expenses += b.Expenses.Cents
		byName[b.Name] = b
	}

	// Buckets must reconcile exactly with the window totals.
	s, err := Summarize([]core.Transaction{groceries1, groceries2, salary, stray}, window, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if income != s.TotalIncome.Cents || expenses != s.TotalExpenses.Cents {
		t.Fatalf("breakdown does not reconcile: %d/%d vs %d/%d",
			income, expenses, s.TotalIncome.Cents, s.TotalExpenses.Cents)
	}

	uncat, ok := byName["Uncategorized"]
	if !ok {
		t.Fatalf("missing uncategorized bucket")
	}
	if uncat.Expenses.Cents != 2500 || uncat.Color != UncategorizedColor {
		t.Fatalf("uncategorized bucket wrong: %+v", uncat)
	}
	if byName["Groceries"].Expenses.Cents != 15000 {
		t.Fatalf("groceries: %+v", byName["Groceries"])
	}
}
