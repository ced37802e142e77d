package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"financas/internal/auth"
	"financas/internal/core"
	"financas/internal/storage"
)

// CategoryService manages the user-defined category palette.
type CategoryService struct {
	store storage.CategoryStore
	auth  auth.Provider
	now   func() time.Time
}

func NewCategoryService(store storage.CategoryStore, authProvider auth.Provider) *CategoryService {
	return &CategoryService{store: store, auth: authProvider, now: time.Now}
}

// defaultCategories seeds a fresh account with a usable palette.
var defaultCategories = []core.Category{
	{Name: "Salary", Color: "#22C55E", Type: core.Income},
	{Name: "Other Income", Color: "#10B981", Type: core.Income},
	{Name: "Housing", Color: "#EF4444", Type: core.Expense},
	{Name: "Groceries", Color: "#F59E0B", Type: core.Expense},
	{Name: "Transport", Color: "#3B82F6", Type: core.Expense},
	{Name: "Health", Color: "#EC4899", Type: core.Expense},
	{Name: "Leisure", Color: "#8B5CF6", Type: core.Expense},
	{Name: "Other", Color: "#6B7280", Type: core.Expense},
}

// Create validates and persists a new category.
func (s *CategoryService) Create(ctx context.Context, c core.Category) (core.Category, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return core.Category{}, err
	}

	c.ID = uuid.New().String()
	c.UserID = user.ID
	c.CreatedAt = s.now()
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	if err := s.store.CreateCategory(ctx, &c); err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}

	slog.InfoContext(ctx, "Category created", "category_id", c.ID, "name", c.Name, "type", c.Type)
	return c, nil
}

// List returns the user's categories, optionally filtered by type.
// Without a user the palette is simply empty.
func (s *CategoryService) List(ctx context.Context, typ *core.TransactionType) ([]core.Category, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, core.ErrNotAuthenticated) {
			return nil, nil
		}
		return nil, err
	}
	cats, err := s.store.ListCategories(ctx, user.ID, typ)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Update renames or recolors an existing category.
func (s *CategoryService) Update(ctx context.Context, c core.Category) error {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	c.UserID = user.ID
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category. Transactions keep existing and fall into
// the uncategorized bucket from then on.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCategory(ctx, user.ID, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// EnsureDefaults seeds the starter palette when the user has no
// categories yet. Safe to call on every startup.
func (s *CategoryService) EnsureDefaults(ctx context.Context) error {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, core.ErrNotAuthenticated) {
			return nil
		}
		return err
	}

	existing, err := s.store.ListCategories(ctx, user.ID, nil)
	if err != nil {
		return fmt.Errorf("check existing categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, c := range defaultCategories {
		c.ID = uuid.New().String()
		c.UserID = user.ID
		c.CreatedAt = s.now()
		if err := s.store.CreateCategory(ctx, &c); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}
	slog.InfoContext(ctx, "Seeded default categories", "count", len(defaultCategories))
	return nil
}
