package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"financas/internal/core"

	"github.com/supabase-community/supabase-go"
)

// SupabaseStore talks to a Supabase project through PostgREST. All row
// filtering happens server-side; aggregation stays in this process.
type SupabaseStore struct {
	client *supabase.Client
}

func NewSupabaseStore(url, key string) (*SupabaseStore, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &SupabaseStore{client: client}, nil
}

// Close exists to satisfy Store; the PostgREST client holds no resources.
func (s *SupabaseStore) Close() error { return nil }

func (s *SupabaseStore) CreateTransactions(ctx context.Context, txs []core.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	rows := make([]transactionRow, len(txs))
	for i, t := range txs {
		rows[i] = toTransactionRow(t)
	}
	// One insert for the whole slice: PostgREST applies it in a single
	// statement, so an installment batch cannot land partially.
	_, _, err := s.client.From("transactions").Insert(rows, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func (s *SupabaseStore) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	data, _, err := s.client.From("transactions").
		Select("*", "", false).
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	var rows []transactionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction: %w", err)
	}
	if len(rows) == 0 {
		return core.Transaction{}, core.ErrNotFound
	}
	return rows[0].toTransaction()
}

func (s *SupabaseStore) ListTransactions(ctx context.Context, userID string, f TransactionFilter) ([]core.Transaction, error) {
	query := s.client.From("transactions").
		Select("*", "", false).
		Eq("user_id", userID)

	if f.Type != nil {
		query = query.Eq("type", string(*f.Type))
	}
	if f.From != nil {
		query = query.Gte("transaction_date", f.From.Format(dateLayout))
	}
	if f.To != nil {
		query = query.Lte("transaction_date", f.To.Format(dateLayout))
	}
	if f.IsPaid != nil {
		query = query.Eq("is_paid", fmt.Sprintf("%t", *f.IsPaid))
	}
	query = query.Order("transaction_date.desc", nil)
	if f.Limit > 0 {
		query = query.Limit(f.Limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return decodeTransactions(data)
}

func (s *SupabaseStore) UpdateTransaction(ctx context.Context, userID, id string, changes TransactionChanges) error {
	fields := changes.Fields()
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	_, _, err := s.client.From("transactions").
		Update(fields, "", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

func (s *SupabaseStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	_, _, err := s.client.From("transactions").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *SupabaseStore) ListRecurringTemplates(ctx context.Context, userID string) ([]core.Transaction, error) {
	data, _, err := s.client.From("transactions").
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("is_recurring", "true").
		Order("transaction_date.asc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list recurring templates: %w", err)
	}
	return decodeTransactions(data)
}

func (s *SupabaseStore) CreateCategory(ctx context.Context, c *core.Category) error {
	data, _, err := s.client.From("categories").Insert(toCategoryRow(*c), false, "", "representation", "").Execute()
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	var created []categoryRow
	if err := json.Unmarshal(data, &created); err == nil && len(created) > 0 {
		*c = created[0].toCategory()
	}
	return nil
}

func (s *SupabaseStore) ListCategories(ctx context.Context, userID string, typ *core.TransactionType) ([]core.Category, error) {
	query := s.client.From("categories").
		Select("*", "", false).
		Eq("user_id", userID)
	if typ != nil {
		query = query.Eq("type", string(*typ))
	}
	data, _, err := query.Order("name.asc", nil).Execute()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	var rows []categoryRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	out := make([]core.Category, len(rows))
	for i, r := range rows {
		out[i] = r.toCategory()
	}
	return out, nil
}

func (s *SupabaseStore) UpdateCategory(ctx context.Context, c core.Category) error {
	fields := map[string]any{
		"name":  c.Name,
		"color": c.Color,
		"type":  string(c.Type),
	}
	_, _, err := s.client.From("categories").
		Update(fields, "", "").
		Eq("id", c.ID).
		Eq("user_id", c.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (s *SupabaseStore) DeleteCategory(ctx context.Context, userID, id string) error {
	_, _, err := s.client.From("categories").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func decodeTransactions(data []byte) ([]core.Transaction, error) {
	var rows []transactionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse transactions: %w", err)
	}
	out := make([]core.Transaction, 0, len(rows))
	for _, r := range rows {
		t, err := r.toTransaction()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
