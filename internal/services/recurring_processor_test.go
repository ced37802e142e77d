package services

import (
	"context"
	"testing"
	"time"

	"financas/internal/auth"
	"financas/internal/core"
)

func newRecurringFixture() (*fakeStore, *RecurringProcessor) {
	store := newFakeStore()
	svc := NewTransactionService(store, auth.NewStatic("u-1", "u@example.com"), nil, nil)
	return store, NewRecurringProcessor(store, svc, "u-1")
}

func monthlyTemplate(id string, anchor core.Date) core.Transaction {
	return core.Transaction{
		ID:                id,
		UserID:            "u-1",
		Type:              core.Expense,
		Amount:            core.Money{Cents: 999},
		Description:       "streaming",
		Date:              anchor,
		CategoryID:        "c-1",
		IsPaid:            true,
		IsRecurring:       true,
		RecurringInterval: core.Monthly,
	}
}

func TestRecurringProcessor_ProcessDue(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an occurrence when due", func(t *testing.T) {
		store, proc := newRecurringFixture()
		tmpl := monthlyTemplate("tmpl-1", core.NewDate(2025, 2, 15))
		store.transactions[tmpl.ID] = tmpl

		now := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
		n, err := proc.ProcessDue(ctx, now)
		if err != nil {
			t.Fatalf("ProcessDue() error = %v", err)
		}
		if n != 1 {
			t.Fatalf("ProcessDue() = %d, want 1", n)
		}

		var occ core.Transaction
		for _, tx := range store.transactions {
			if tx.ParentID == tmpl.ID {
				occ = tx
			}
		}
		if occ.ID == "" {
			t.Fatal("no occurrence linked to the template")
		}
		if occ.IsPaid {
			t.Error("occurrence should start unpaid")
		}
		if occ.Date.String() != "2025-03-15" || occ.DueDate.String() != "2025-03-15" {
			t.Errorf("occurrence dated %s due %s, want today", occ.Date, occ.DueDate)
		}
		if occ.Amount != tmpl.Amount || occ.CategoryID != tmpl.CategoryID || occ.Description != tmpl.Description {
			t.Error("occurrence should carry the template's amount, category and description")
		}
		if occ.IsRecurring {
			t.Error("occurrence must not itself be a template")
		}
	})

	t.Run("not due before the anchor day", func(t *testing.T) {
		store, proc := newRecurringFixture()
		tmpl := monthlyTemplate("tmpl-1", core.NewDate(2025, 2, 15))
		store.transactions[tmpl.ID] = tmpl

		n, err := proc.ProcessDue(ctx, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("ProcessDue() error = %v", err)
		}
		if n != 0 {
			t.Errorf("ProcessDue() = %d, want 0", n)
		}
	})

	t.Run("existing occurrence this month blocks another", func(t *testing.T) {
		store, proc := newRecurringFixture()
		tmpl := monthlyTemplate("tmpl-1", core.NewDate(2025, 2, 15))
		store.transactions[tmpl.ID] = tmpl
		store.transactions["occ-1"] = core.Transaction{
			ID: "occ-1", UserID: "u-1", Type: core.Expense,
			Amount: tmpl.Amount, Date: core.NewDate(2025, 3, 15),
			ParentID: tmpl.ID,
		}

		n, err := proc.ProcessDue(ctx, time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("ProcessDue() error = %v", err)
		}
		if n != 0 {
			t.Errorf("ProcessDue() = %d, want 0", n)
		}
	})

	t.Run("bad template is skipped, the rest proceed", func(t *testing.T) {
		store, proc := newRecurringFixture()
		good := monthlyTemplate("tmpl-good", core.NewDate(2025, 2, 15))
		bad := monthlyTemplate("tmpl-bad", core.NewDate(2025, 2, 1))
		bad.RecurringInterval = core.RecurringInterval("fortnightly")
		store.transactions[good.ID] = good
		store.transactions[bad.ID] = bad

		n, err := proc.ProcessDue(ctx, time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("ProcessDue() error = %v", err)
		}
		if n != 1 {
			t.Errorf("ProcessDue() = %d, want 1", n)
		}
	})

	t.Run("weekly template fires every seven days", func(t *testing.T) {
		store, proc := newRecurringFixture()
		tmpl := monthlyTemplate("tmpl-1", core.NewDate(2025, 3, 1))
		tmpl.RecurringInterval = core.Weekly
		store.transactions[tmpl.ID] = tmpl

		n, err := proc.ProcessDue(ctx, time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("ProcessDue() error = %v", err)
		}
		if n != 1 {
			t.Fatalf("ProcessDue() = %d, want 1", n)
		}

		// The fresh occurrence is now the chain head; nothing more is due.
		n, err = proc.ProcessDue(ctx, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("ProcessDue() error = %v", err)
		}
		if n != 0 {
			t.Errorf("ProcessDue() = %d, want 0", n)
		}
	})
}
