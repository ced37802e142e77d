package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"financas/internal/core"
)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "financas.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreUpdateTimestamp(t *testing.T) {
	store := newSQLiteTestStore(t)
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tx := core.Transaction{
		ID: "t-1", UserID: "u-1", Type: core.Expense,
		Amount: core.Money{Cents: 5000}, Description: "electricity",
		Date:      core.NewDate(2025, 3, 1),
		CreatedAt: created, UpdatedAt: created,
	}
	if err := store.CreateTransactions(ctx, []core.Transaction{tx}); err != nil {
		t.Fatalf("create: %v", err)
	}

	paid := true
	if err := store.UpdateTransaction(ctx, "u-1", "t-1", TransactionChanges{IsPaid: &paid}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetTransaction(ctx, "u-1", "t-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsPaid {
		t.Errorf("paid flag did not stick: %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatalf("updated_at scans back as the zero time after an update")
	}
	if got.UpdatedAt.Before(created) {
		t.Errorf("updated_at = %v, want at or after %v", got.UpdatedAt, created)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, created)
	}
}

func TestSQLiteStoreUpdateMissingRow(t *testing.T) {
	store := newSQLiteTestStore(t)

	paid := true
	err := store.UpdateTransaction(context.Background(), "u-1", "missing", TransactionChanges{IsPaid: &paid})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStoreListDateBoundsInclusive(t *testing.T) {
	store := newSQLiteTestStore(t)
	ctx := context.Background()

	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	rows := []core.Transaction{
		{ID: "t-mar", UserID: "u-1", Type: core.Expense, Amount: core.Money{Cents: 100},
			Date: core.NewDate(2025, 3, 31), CreatedAt: now, UpdatedAt: now},
		{ID: "t-apr", UserID: "u-1", Type: core.Expense, Amount: core.Money{Cents: 200},
			Date: core.NewDate(2025, 4, 1), CreatedAt: now, UpdatedAt: now},
	}
	if err := store.CreateTransactions(ctx, rows); err != nil {
		t.Fatalf("create: %v", err)
	}

	from := core.NewDate(2025, 3, 1)
	to := core.NewDate(2025, 3, 31)
	got, err := store.ListTransactions(ctx, "u-1", TransactionFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t-mar" {
		t.Fatalf("expected only the March 31 row, got %+v", got)
	}
}
