// Package storage persists transactions and categories.
//
// Two implementations exist: a Supabase (PostgREST) client for hosted
// deployments and a local SQLite database for self-hosted ones. Both
// satisfy the same interfaces; services never know which one they talk to.
package storage

import (
	"context"

	"financas/internal/core"
)

// TransactionFilter narrows ListTransactions. Nil fields are ignored.
type TransactionFilter struct {
	Type   *core.TransactionType
	From   *core.Date // inclusive, on transaction date
	To     *core.Date // inclusive, on transaction date
	IsPaid *bool
	Limit  int
}

// TransactionChanges is a partial update. Nil fields are left untouched.
type TransactionChanges struct {
	Amount      *core.Money
	Description *string
	Date        *core.Date
	DueDate     *core.Date
	CategoryID  *string
	IsPaid      *bool
	IsFixed     *bool
}

// Fields returns the column/value pairs this change set touches.
func (c TransactionChanges) Fields() map[string]any {
	m := map[string]any{}
	if c.Amount != nil {
		m["amount_cents"] = c.Amount.Cents
	}
	if c.Description != nil {
		m["description"] = *c.Description
	}
	if c.Date != nil {
		m["transaction_date"] = c.Date.String()
	}
	if c.DueDate != nil {
		if c.DueDate.IsEmpty() {
			m["due_date"] = nil
		} else {
			m["due_date"] = c.DueDate.String()
		}
	}
	if c.CategoryID != nil {
		if *c.CategoryID == "" {
			m["category_id"] = nil
		} else {
			m["category_id"] = *c.CategoryID
		}
	}
	if c.IsPaid != nil {
		m["is_paid"] = *c.IsPaid
	}
	if c.IsFixed != nil {
		m["is_fixed"] = *c.IsFixed
	}
	return m
}

// TransactionStore is the transaction persistence port.
type TransactionStore interface {
	// CreateTransactions persists all rows as one batch. Either every
	// row lands or none does; installment plans rely on this.
	CreateTransactions(ctx context.Context, txs []core.Transaction) error
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	ListTransactions(ctx context.Context, userID string, f TransactionFilter) ([]core.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id string, changes TransactionChanges) error
	DeleteTransaction(ctx context.Context, userID, id string) error
	// ListRecurringTemplates returns transactions flagged recurring,
	// for the materialization worker.
	ListRecurringTemplates(ctx context.Context, userID string) ([]core.Transaction, error)
}

// CategoryStore is the category persistence port.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c *core.Category) error
	ListCategories(ctx context.Context, userID string, typ *core.TransactionType) ([]core.Category, error)
	UpdateCategory(ctx context.Context, c core.Category) error
	DeleteCategory(ctx context.Context, userID, id string) error
}

// Store is the full persistence surface a backend must provide.
type Store interface {
	TransactionStore
	CategoryStore
	Close() error
}
