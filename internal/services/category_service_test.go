package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"financas/internal/auth"
	"financas/internal/core"
)

func newTestCategoryService(store *fakeStore) *CategoryService {
	svc := NewCategoryService(store, auth.NewStatic("u-1", "u@example.com"))
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid category", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestCategoryService(store)

		created, err := svc.Create(ctx, core.Category{Name: "Pets", Color: "#F97316", Type: core.Expense})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.ID == "" {
			t.Error("Create() should assign an ID")
		}
		if created.UserID != "u-1" {
			t.Errorf("Create() UserID = %q, want u-1", created.UserID)
		}
		if len(store.categories) != 1 {
			t.Errorf("store holds %d categories, want 1", len(store.categories))
		}
	})

	t.Run("rejects bad color", func(t *testing.T) {
		svc := newTestCategoryService(newFakeStore())
		_, err := svc.Create(ctx, core.Category{Name: "Pets", Color: "orange", Type: core.Expense})
		if !errors.Is(err, core.ErrInvalidColor) {
			t.Fatalf("Create() error = %v, want ErrInvalidColor", err)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc := newTestCategoryService(newFakeStore())
		_, err := svc.Create(ctx, core.Category{Name: "  ", Color: "#F97316", Type: core.Expense})
		if !errors.Is(err, core.ErrEmptyCategoryName) {
			t.Fatalf("Create() error = %v, want ErrEmptyCategoryName", err)
		}
	})

	t.Run("no user refuses the write", func(t *testing.T) {
		svc := NewCategoryService(newFakeStore(), auth.NewStatic("", ""))
		_, err := svc.Create(ctx, core.Category{Name: "Pets", Color: "#F97316", Type: core.Expense})
		if !errors.Is(err, core.ErrNotAuthenticated) {
			t.Fatalf("Create() error = %v, want ErrNotAuthenticated", err)
		}
	})
}

func TestCategoryService_List(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestCategoryService(store)

	store.categories["c-1"] = core.Category{ID: "c-1", UserID: "u-1", Name: "Salary", Color: "#22C55E", Type: core.Income}
	store.categories["c-2"] = core.Category{ID: "c-2", UserID: "u-1", Name: "Housing", Color: "#EF4444", Type: core.Expense}
	store.categories["c-3"] = core.Category{ID: "c-3", UserID: "other", Name: "Stealth", Color: "#000000", Type: core.Expense}

	all, err := svc.List(ctx, nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List() returned %d categories, want 2", len(all))
	}

	income := core.Income
	incomes, err := svc.List(ctx, &income)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(incomes) != 1 || incomes[0].Name != "Salary" {
		t.Errorf("List(income) = %+v, want just Salary", incomes)
	}

	t.Run("no user means empty palette", func(t *testing.T) {
		anon := NewCategoryService(store, auth.NewStatic("", ""))
		cats, err := anon.List(ctx, nil)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if cats != nil {
			t.Errorf("List() = %v, want nil", cats)
		}
	})
}

func TestCategoryService_EnsureDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds an empty account", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestCategoryService(store)

		if err := svc.EnsureDefaults(ctx); err != nil {
			t.Fatalf("EnsureDefaults() error = %v", err)
		}
		if len(store.categories) != len(defaultCategories) {
			t.Errorf("seeded %d categories, want %d", len(store.categories), len(defaultCategories))
		}
	})

	t.Run("leaves an existing palette alone", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestCategoryService(store)
		store.categories["c-1"] = core.Category{ID: "c-1", UserID: "u-1", Name: "Mine", Color: "#112233", Type: core.Expense}

		if err := svc.EnsureDefaults(ctx); err != nil {
			t.Fatalf("EnsureDefaults() error = %v", err)
		}
		if len(store.categories) != 1 {
			t.Errorf("store holds %d categories, want the original 1", len(store.categories))
		}
	})

	t.Run("no-op without a user", func(t *testing.T) {
		store := newFakeStore()
		svc := NewCategoryService(store, auth.NewStatic("", ""))

		if err := svc.EnsureDefaults(ctx); err != nil {
			t.Fatalf("EnsureDefaults() error = %v", err)
		}
		if len(store.categories) != 0 {
			t.Error("EnsureDefaults() should not seed without a user")
		}
	})
}

func TestCategoryService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestCategoryService(store)

	store.categories["c-1"] = core.Category{ID: "c-1", UserID: "u-1", Name: "Housing", Color: "#EF4444", Type: core.Expense}

	if err := svc.Update(ctx, core.Category{ID: "c-1", Name: "Rent & Utilities", Color: "#DC2626", Type: core.Expense}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := store.categories["c-1"]; got.Name != "Rent & Utilities" || got.Color != "#DC2626" {
		t.Errorf("Update() result = %+v", got)
	}

	if err := svc.Delete(ctx, "c-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(store.categories) != 0 {
		t.Error("Delete() should remove the category")
	}
}
