package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"financas/internal/amqp"
	"financas/internal/auth"
	"financas/internal/cache"
	"financas/internal/core"
	"financas/internal/reports"
	"financas/internal/storage"
)

// TransactionService orchestrates transaction reads and writes: identity
// checks, validation, installment expansion, cache invalidation and event
// publishing. Storage and the event bus stay behind interfaces so both
// backends and broker-less deployments work.
type TransactionService struct {
	store      storage.Store
	auth       auth.Provider
	amqpClient *amqp.Client

	listCache *cache.LRUCache[[]core.Transaction]

	now func() time.Time
}

func NewTransactionService(store storage.Store, authProvider auth.Provider, amqpClient *amqp.Client, listCache *cache.LRUCache[[]core.Transaction]) *TransactionService {
	return &TransactionService{
		store:      store,
		auth:       authProvider,
		amqpClient: amqpClient,
		listCache:  listCache,
		now:        time.Now,
	}
}

// DashboardData is everything the dashboard view needs for one month.
type DashboardData struct {
	Summary    reports.Summary
	ByCategory []reports.CategoryTotal
	Recent     []core.Transaction
}

// Create validates the request, expands installment plans and persists
// the resulting rows as one batch.
func (s *TransactionService) Create(ctx context.Context, ct core.CreateTransaction) ([]core.Transaction, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := ct.Validate(); err != nil {
		return nil, err
	}

	rows := core.ExpandInstallments(ct, user.ID, s.now())
	if err := s.store.CreateTransactions(ctx, rows); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	s.invalidate(user.ID)
	s.publish(ctx, rows[0].ID, user.ID, amqp.ActionCreated)

	slog.InfoContext(ctx, "Transactions created",
		"count", len(rows),
		"type", ct.Type,
		"installments", ct.IsInstallment)
	return rows, nil
}

// CreateOccurrence persists a single already-built row. The recurring
// processor uses it for materialized occurrences that carry a parent
// link no user-facing request could express.
func (s *TransactionService) CreateOccurrence(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := s.store.CreateTransactions(ctx, []core.Transaction{tx}); err != nil {
		return fmt.Errorf("create occurrence: %w", err)
	}
	s.invalidate(tx.UserID)
	s.publish(ctx, tx.ID, tx.UserID, amqp.ActionCreated)
	return nil
}

// Update applies a partial change set to one transaction.
func (s *TransactionService) Update(ctx context.Context, id string, changes storage.TransactionChanges) error {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if changes.Amount != nil {
		if err := changes.Amount.Validate(); err != nil {
			return err
		}
	}

	if err := s.store.UpdateTransaction(ctx, user.ID, id, changes); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	s.invalidate(user.ID)
	s.publish(ctx, id, user.ID, amqp.ActionUpdated)
	return nil
}

// MarkPaid settles a bill: the paid flag flips and the transaction date
// moves to today, since that is when the money actually left. Amount,
// category and description stay untouched.
func (s *TransactionService) MarkPaid(ctx context.Context, id string) error {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	paid := true
	today := core.DateOf(s.now())
	changes := storage.TransactionChanges{IsPaid: &paid, Date: &today}
	if err := s.store.UpdateTransaction(ctx, user.ID, id, changes); err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}

	s.invalidate(user.ID)
	s.publish(ctx, id, user.ID, amqp.ActionUpdated)

	slog.InfoContext(ctx, "Bill marked as paid", "transaction_id", id)
	return nil
}

// Delete removes one transaction. Installment siblings are independent
// rows and are not touched.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTransaction(ctx, user.ID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.invalidate(user.ID)
	s.publish(ctx, id, user.ID, amqp.ActionDeleted)
	return nil
}

// Get returns one transaction of the current user.
func (s *TransactionService) Get(ctx context.Context, id string) (core.Transaction, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	return s.store.GetTransaction(ctx, user.ID, id)
}

// List returns the current user's transactions, newest first. Results
// are cached per filter until the next mutation. No user means no data,
// not an error.
func (s *TransactionService) List(ctx context.Context, f storage.TransactionFilter) ([]core.Transaction, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, core.ErrNotAuthenticated) {
			return nil, nil
		}
		return nil, err
	}

	key := listCacheKey(user.ID, f)
	if s.listCache != nil {
		if cached, ok := s.listCache.Get(key); ok {
			return cached, nil
		}
	}

	txs, err := s.store.ListTransactions(ctx, user.ID, f)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if s.listCache != nil {
		s.listCache.Set(key, txs)
	}
	return txs, nil
}

// Dashboard assembles the month overview. The transaction list, the
// unpaid bills and the categories load concurrently.
func (s *TransactionService) Dashboard(ctx context.Context, month time.Time, categories CategoryLister) (DashboardData, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, core.ErrNotAuthenticated) {
			return DashboardData{}, nil
		}
		return DashboardData{}, err
	}

	window := reports.MonthWindow(month)
	billWindow := reports.NextDays(s.now(), reports.UpcomingHorizonDays)

	var (
		monthTxs []core.Transaction
		bills    []core.Transaction
		cats     []core.Category
	)

	lastDay := window.LastDay()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		monthTxs, err = s.store.ListTransactions(gctx, user.ID, storage.TransactionFilter{
			From: &window.Start, To: &lastDay,
		})
		return err
	})
	g.Go(func() error {
		unpaid := false
		expense := core.Expense
		var err error
		bills, err = s.store.ListTransactions(gctx, user.ID, storage.TransactionFilter{
			Type: &expense, IsPaid: &unpaid,
		})
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = categories.List(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardData{}, fmt.Errorf("load dashboard data: %w", err)
	}

	// The two fetches overlap on unpaid expenses dated this month;
	// dedupe so nothing is counted twice.
	seen := make(map[string]bool, len(monthTxs))
	all := make([]core.Transaction, 0, len(monthTxs)+len(bills))
	for _, tx := range monthTxs {
		seen[tx.ID] = true
		all = append(all, tx)
	}
	for _, tx := range bills {
		if !seen[tx.ID] {
			all = append(all, tx)
		}
	}
	summary, err := reports.Summarize(all, window, billWindow)
	if err != nil {
		return DashboardData{}, err
	}
	byCategory, err := reports.ByCategory(monthTxs, cats, window)
	if err != nil {
		return DashboardData{}, err
	}

	recent := monthTxs
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return DashboardData{Summary: summary, ByCategory: byCategory, Recent: recent}, nil
}

// Bills loads and classifies the current user's expenses for the bills
// view.
func (s *TransactionService) Bills(ctx context.Context) (reports.Bills, error) {
	expense := core.Expense
	txs, err := s.List(ctx, storage.TransactionFilter{Type: &expense})
	if err != nil {
		return reports.Bills{}, err
	}
	return reports.ClassifyBills(txs, s.now()), nil
}

// CategoryLister is the slice of the category service the dashboard
// needs.
type CategoryLister interface {
	List(ctx context.Context, typ *core.TransactionType) ([]core.Category, error)
}

func (s *TransactionService) invalidate(userID string) {
	if s.listCache == nil {
		return
	}
	s.listCache.DeletePrefix(userID + "|")
}

// publish notifies the sync worker. The broker is optional and a failed
// publish never fails the request; the row is already persisted.
func (s *TransactionService) publish(ctx context.Context, txID, userID, action string) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishTransactionEvent(ctx, amqp.NewTransactionEvent(txID, userID, action)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"transaction_id", txID, "action", action, "error", err)
	}
}

func listCacheKey(userID string, f storage.TransactionFilter) string {
	key := userID + "|list|"
	if f.Type != nil {
		key += string(*f.Type)
	}
	key += "|"
	if f.From != nil {
		key += f.From.String()
	}
	key += "|"
	if f.To != nil {
		key += f.To.String()
	}
	key += "|"
	if f.IsPaid != nil {
		key += fmt.Sprintf("%t", *f.IsPaid)
	}
	return fmt.Sprintf("%s|%d", key, f.Limit)
}

// Close releases the event bus connection.
func (s *TransactionService) Close() error {
	if s.amqpClient != nil {
		return s.amqpClient.Close()
	}
	return nil
}
