package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"financas/internal/core"
	"financas/internal/storage"
)

// RecurringProcessor materializes recurring charges: each transaction
// flagged recurring acts as a template, and the processor creates the
// next unpaid occurrence when its interval says one is due.
type RecurringProcessor struct {
	store   storage.TransactionStore
	service *TransactionService
	userID  string
}

// NewRecurringProcessor creates a processor for one user's templates.
func NewRecurringProcessor(store storage.TransactionStore, service *TransactionService, userID string) *RecurringProcessor {
	return &RecurringProcessor{
		store:   store,
		service: service,
		userID:  userID,
	}
}

// ProcessDue walks all recurring templates and creates the occurrences
// that are due at now. Returns how many were created. Individual
// template failures are logged and skipped so one broken template never
// stalls the rest.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if p.store == nil || p.service == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	templates, err := p.store.ListRecurringTemplates(ctx, p.userID)
	if err != nil {
		return 0, fmt.Errorf("list recurring templates: %w", err)
	}

	slog.InfoContext(ctx, "Processing recurring charges",
		"total_templates", len(templates),
		"processing_date", now.Format("2006-01-02"))

	// One list call covers every template's occurrence lookup.
	existing, err := p.store.ListTransactions(ctx, p.userID, storage.TransactionFilter{})
	if err != nil {
		return 0, fmt.Errorf("list transactions: %w", err)
	}

	processed := 0
	for _, tmpl := range templates {
		checker, err := GetDuenessChecker(tmpl.RecurringInterval)
		if err != nil {
			slog.ErrorContext(ctx, "Skipping template with unknown interval",
				"template_id", tmpl.ID,
				"interval", tmpl.RecurringInterval)
			continue
		}

		last := lastOccurrence(tmpl, existing)
		if !checker.IsDue(last, now, tmpl.Date) {
			continue
		}

		occurrence := buildOccurrence(tmpl, now)
		if err := p.service.CreateOccurrence(ctx, occurrence); err != nil {
			slog.ErrorContext(ctx, "Failed to create occurrence from template",
				"template_id", tmpl.ID,
				"description", tmpl.Description,
				"error", err)
			continue
		}

		processed++
		slog.InfoContext(ctx, "Created occurrence from recurring template",
			"template_id", tmpl.ID,
			"description", tmpl.Description,
			"amount_cents", tmpl.Amount.Cents,
			"interval", tmpl.RecurringInterval)
	}

	slog.InfoContext(ctx, "Recurring charge processing complete",
		"processed", processed,
		"total_checked", len(templates))

	return processed, nil
}

// lastOccurrence returns the date of the newest row in the template's
// chain: the template itself or any occurrence linked to it.
func lastOccurrence(tmpl core.Transaction, txs []core.Transaction) time.Time {
	last := tmpl.Date.Time
	for _, tx := range txs {
		if tx.ParentID == tmpl.ID && tx.Date.After(last) {
			last = tx.Date.Time
		}
	}
	return last
}

// buildOccurrence derives the new unpaid row from its template.
func buildOccurrence(tmpl core.Transaction, now time.Time) core.Transaction {
	today := core.DateOf(now)
	return core.Transaction{
		ID:          uuid.New().String(),
		UserID:      tmpl.UserID,
		Type:        tmpl.Type,
		Amount:      tmpl.Amount,
		Description: tmpl.Description,
		Date:        today,
		DueDate:     today,
		CategoryID:  tmpl.CategoryID,
		IsPaid:      false,
		IsFixed:     tmpl.IsFixed,
		ParentID:    tmpl.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
