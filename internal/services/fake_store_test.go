package services

import (
	"context"
	"sort"
	"sync"

	"financas/internal/core"
	"financas/internal/storage"
)

// fakeStore is an in-memory storage.Store for service tests.
type fakeStore struct {
	mu           sync.Mutex
	transactions map[string]core.Transaction
	categories   map[string]core.Category

	createErr error
	updateErr error

	createCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		transactions: make(map[string]core.Transaction),
		categories:   make(map[string]core.Category),
	}
}

func (f *fakeStore) CreateTransactions(ctx context.Context, txs []core.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	for _, tx := range txs {
		f.transactions[tx.ID] = tx
	}
	return nil
}

func (f *fakeStore) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.transactions[id]
	if !ok || tx.UserID != userID {
		return core.Transaction{}, core.ErrNotFound
	}
	return tx, nil
}

func (f *fakeStore) ListTransactions(ctx context.Context, userID string, filter storage.TransactionFilter) ([]core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Transaction
	for _, tx := range f.transactions {
		if tx.UserID != userID {
			continue
		}
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		if filter.From != nil && tx.Date.Before(filter.From.Time) {
			continue
		}
		if filter.To != nil && tx.Date.After(filter.To.Time) {
			continue
		}
		if filter.IsPaid != nil && tx.IsPaid != *filter.IsPaid {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date.Time) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeStore) UpdateTransaction(ctx context.Context, userID, id string, changes storage.TransactionChanges) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	tx, ok := f.transactions[id]
	if !ok || tx.UserID != userID {
		return core.ErrNotFound
	}
	if changes.Amount != nil {
		tx.Amount = *changes.Amount
	}
	if changes.Description != nil {
		tx.Description = *changes.Description
	}
	if changes.Date != nil {
		tx.Date = *changes.Date
	}
	if changes.DueDate != nil {
		tx.DueDate = *changes.DueDate
	}
	if changes.CategoryID != nil {
		tx.CategoryID = *changes.CategoryID
	}
	if changes.IsPaid != nil {
		tx.IsPaid = *changes.IsPaid
	}
	if changes.IsFixed != nil {
		tx.IsFixed = *changes.IsFixed
	}
	f.transactions[id] = tx
	return nil
}

func (f *fakeStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.transactions[id]
	if !ok || tx.UserID != userID {
		return core.ErrNotFound
	}
	delete(f.transactions, id)
	return nil
}

func (f *fakeStore) ListRecurringTemplates(ctx context.Context, userID string) ([]core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Transaction
	for _, tx := range f.transactions {
		if tx.UserID == userID && tx.IsRecurring {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CreateCategory(ctx context.Context, c *core.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeStore) ListCategories(ctx context.Context, userID string, typ *core.TransactionType) ([]core.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Category
	for _, c := range f.categories {
		if c.UserID != userID {
			continue
		}
		if typ != nil && c.Type != *typ {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) UpdateCategory(ctx context.Context, c core.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.categories[c.ID]
	if !ok || existing.UserID != c.UserID {
		return core.ErrNotFound
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeStore) DeleteCategory(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok || c.UserID != userID {
		return core.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeStore) Close() error { return nil }
