package storage

import (
	"fmt"
	"time"

	"financas/internal/core"
)

const dateLayout = "2006-01-02"

// transactionRow mirrors the transactions table. The JSON tags double as
// PostgREST column names for the Supabase backend.
type transactionRow struct {
	ID                string  `json:"id"`
	UserID            string  `json:"user_id"`
	Type              string  `json:"type"`
	AmountCents       int64   `json:"amount_cents"`
	Description       string  `json:"description"`
	TransactionDate   string  `json:"transaction_date"`
	DueDate           *string `json:"due_date"`
	CategoryID        *string `json:"category_id"`
	IsPaid            bool    `json:"is_paid"`
	IsFixed           bool    `json:"is_fixed"`
	IsRecurring       bool    `json:"is_recurring"`
	RecurringInterval *string `json:"recurring_interval"`
	IsInstallment     bool    `json:"is_installment"`
	InstallmentNumber *int    `json:"installment_number"`
	InstallmentCount  *int    `json:"installment_count"`
	ParentID          *string `json:"parent_transaction_id"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// categoryRow mirrors the categories table.
type categoryRow struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

func toTransactionRow(t core.Transaction) transactionRow {
	row := transactionRow{
		ID:              t.ID,
		UserID:          t.UserID,
		Type:            string(t.Type),
		AmountCents:     t.Amount.Cents,
		Description:     t.Description,
		TransactionDate: t.Date.Format(dateLayout),
		IsPaid:          t.IsPaid,
		IsFixed:         t.IsFixed,
		IsRecurring:     t.IsRecurring,
		IsInstallment:   t.IsInstallment,
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if !t.DueDate.IsEmpty() {
		s := t.DueDate.Format(dateLayout)
		row.DueDate = &s
	}
	if t.CategoryID != "" {
		s := t.CategoryID
		row.CategoryID = &s
	}
	if t.IsRecurring {
		s := string(t.RecurringInterval)
		row.RecurringInterval = &s
	}
	if t.IsInstallment {
		n, c := t.InstallmentNumber, t.InstallmentCount
		row.InstallmentNumber = &n
		row.InstallmentCount = &c
	}
	if t.ParentID != "" {
		s := t.ParentID
		row.ParentID = &s
	}
	return row
}

func (r transactionRow) toTransaction() (core.Transaction, error) {
	date, err := time.Parse(dateLayout, r.TransactionDate)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", r.TransactionDate, err)
	}
	t := core.Transaction{
		ID:            r.ID,
		UserID:        r.UserID,
		Type:          core.TransactionType(r.Type),
		Amount:        core.Money{Cents: r.AmountCents},
		Description:   r.Description,
		Date:          core.Date{Time: date},
		IsPaid:        r.IsPaid,
		IsFixed:       r.IsFixed,
		IsRecurring:   r.IsRecurring,
		IsInstallment: r.IsInstallment,
	}
	if r.DueDate != nil && *r.DueDate != "" {
		due, err := time.Parse(dateLayout, *r.DueDate)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("parse due date %q: %w", *r.DueDate, err)
		}
		t.DueDate = core.Date{Time: due}
	}
	if r.CategoryID != nil {
		t.CategoryID = *r.CategoryID
	}
	if r.RecurringInterval != nil {
		t.RecurringInterval = core.RecurringInterval(*r.RecurringInterval)
	}
	if r.InstallmentNumber != nil {
		t.InstallmentNumber = *r.InstallmentNumber
	}
	if r.InstallmentCount != nil {
		t.InstallmentCount = *r.InstallmentCount
	}
	if r.ParentID != nil {
		t.ParentID = *r.ParentID
	}
	if ts, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		t.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, r.UpdatedAt); err == nil {
		t.UpdatedAt = ts
	}
	return t, nil
}

func toCategoryRow(c core.Category) categoryRow {
	return categoryRow{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Color:     c.Color,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (r categoryRow) toCategory() core.Category {
	c := core.Category{
		ID:     r.ID,
		UserID: r.UserID,
		Name:   r.Name,
		Color:  r.Color,
		Type:   core.TransactionType(r.Type),
	}
	if ts, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		c.CreatedAt = ts
	}
	return c
}
