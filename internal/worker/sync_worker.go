// Package worker contains the background processes that run outside the
// HTTP request path: the Google Sheets backup consumer and the periodic
// recurring-charge materializer live in their own binaries built on it.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/sheets"
	"financas/internal/storage"
)

// SyncWorker mirrors transaction mutations into the backup spreadsheet.
// It consumes the events the server publishes after every write: created
// rows are appended, updated rows are replaced, deleted rows are removed.
type SyncWorker struct {
	store   storage.TransactionStore
	catalog storage.CategoryStore
	sheets  sheets.Writer
	deleter sheets.Deleter
	userID  string
}

func NewSyncWorker(store storage.TransactionStore, catalog storage.CategoryStore, writer sheets.Writer, deleter sheets.Deleter, userID string) *SyncWorker {
	return &SyncWorker{
		store:   store,
		catalog: catalog,
		sheets:  writer,
		deleter: deleter,
		userID:  userID,
	}
}

// HandleEvent processes one transaction event. A returned error makes
// the consumer requeue the message, so only transient failures should
// bubble up.
func (w *SyncWorker) HandleEvent(ctx context.Context, ev *amqp.TransactionEvent) error {
	slog.InfoContext(ctx, "Processing transaction event",
		"transaction_id", ev.TransactionID,
		"action", ev.Action)

	switch ev.Action {
	case amqp.ActionCreated:
		return w.appendRow(ctx, ev.TransactionID)
	case amqp.ActionUpdated:
		// Replace the row: drop the stale copy, then append the current
		// state. A row that never synced just gets appended.
		if err := w.deleteRow(ctx, ev.TransactionID); err != nil {
			return err
		}
		return w.appendRow(ctx, ev.TransactionID)
	case amqp.ActionDeleted:
		return w.deleteRow(ctx, ev.TransactionID)
	default:
		slog.WarnContext(ctx, "Ignoring event with unknown action",
			"transaction_id", ev.TransactionID,
			"action", ev.Action)
		return nil
	}
}

func (w *SyncWorker) appendRow(ctx context.Context, transactionID string) error {
	tx, err := w.store.GetTransaction(ctx, w.userID, transactionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// The row vanished between publish and consume. The delete
			// event that removed it will clean the sheet up.
			slog.WarnContext(ctx, "Transaction no longer exists, skipping sync",
				"transaction_id", transactionID)
			return nil
		}
		return fmt.Errorf("get transaction %s: %w", transactionID, err)
	}

	ref, err := w.sheets.Append(ctx, sheets.Row{
		TransactionID: tx.ID,
		Date:          tx.Date,
		Type:          tx.Type,
		Category:      w.categoryName(ctx, tx.CategoryID),
		Description:   tx.Description,
		Amount:        tx.Amount,
		IsPaid:        tx.IsPaid,
	})
	if err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}

	slog.InfoContext(ctx, "Transaction synced to backup sheet",
		"transaction_id", tx.ID,
		"sheets_ref", ref,
		"amount_cents", tx.Amount.Cents)
	return nil
}

func (w *SyncWorker) deleteRow(ctx context.Context, transactionID string) error {
	if w.deleter == nil {
		slog.WarnContext(ctx, "No sheet deleter configured, skipping removal",
			"transaction_id", transactionID)
		return nil
	}
	if err := w.deleter.DeleteByTransactionID(ctx, transactionID); err != nil {
		return fmt.Errorf("delete sheet row for %s: %w", transactionID, err)
	}
	return nil
}

// categoryName resolves the display name for the backup row. Lookup
// failures degrade to an empty cell rather than blocking the sync.
func (w *SyncWorker) categoryName(ctx context.Context, categoryID string) string {
	if categoryID == "" || w.catalog == nil {
		return ""
	}
	cats, err := w.catalog.ListCategories(ctx, w.userID, nil)
	if err != nil {
		slog.WarnContext(ctx, "Could not resolve category name", "category_id", categoryID, "error", err)
		return ""
	}
	for _, c := range cats {
		if c.ID == categoryID {
			return c.Name
		}
	}
	return ""
}
