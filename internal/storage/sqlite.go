package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"financas/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps everything in a local database file. Used for
// self-hosted deployments where no Supabase project exists.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const transactionColumns = `id, user_id, type, amount_cents, description, transaction_date,
	due_date, category_id, is_paid, is_fixed, is_recurring, recurring_interval,
	is_installment, installment_number, installment_count, parent_transaction_id,
	created_at, updated_at`

func (s *SQLiteStore) CreateTransactions(ctx context.Context, txs []core.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txs {
		r := toTransactionRow(t)
		_, err := stmt.ExecContext(ctx,
			r.ID, r.UserID, r.Type, r.AmountCents, r.Description, r.TransactionDate,
			r.DueDate, r.CategoryID, r.IsPaid, r.IsFixed, r.IsRecurring, r.RecurringInterval,
			r.IsInstallment, r.InstallmentNumber, r.InstallmentCount, r.ParentID,
			r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction batch: %w", err)
	}

	slog.InfoContext(ctx, "Transactions saved to SQLite", "count", len(txs))
	return nil
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+transactionColumns+`
		FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context, userID string, f TransactionFilter) ([]core.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = ?`
	args := []any{userID}

	if f.Type != nil {
		query += ` AND type = ?`
		args = append(args, string(*f.Type))
	}
	if f.From != nil {
		query += ` AND transaction_date >= ?`
		args = append(args, f.From.Format(dateLayout))
	}
	if f.To != nil {
		query += ` AND transaction_date <= ?`
		args = append(args, f.To.Format(dateLayout))
	}
	if f.IsPaid != nil {
		query += ` AND is_paid = ?`
		args = append(args, *f.IsPaid)
	}
	query += ` ORDER BY transaction_date DESC, created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateTransaction(ctx context.Context, userID, id string, changes TransactionChanges) error {
	fields := changes.Fields()
	if len(fields) == 0 {
		return nil
	}

	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+3)
	for col, val := range fields {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	// RFC3339 so the scan path parses it, same as the insert path.
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(time.RFC3339), id, userID)

	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListRecurringTemplates(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+transactionColumns+`
		FROM transactions WHERE user_id = ? AND is_recurring = 1
		ORDER BY transaction_date ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list recurring templates: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurring template: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CreateCategory(ctx context.Context, c *core.Category) error {
	r := toCategoryRow(*c)
	_, err := s.db.ExecContext(ctx, `INSERT INTO categories (id, user_id, name, color, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`, r.ID, r.UserID, r.Name, r.Color, r.Type, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListCategories(ctx context.Context, userID string, typ *core.TransactionType) ([]core.Category, error) {
	query := `SELECT id, user_id, name, color, type, created_at FROM categories WHERE user_id = ?`
	args := []any{userID}
	if typ != nil {
		query += ` AND type = ?`
		args = append(args, string(*typ))
	}
	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var r categoryRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Color, &r.Type, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, r.toCategory())
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := s.db.ExecContext(ctx, `UPDATE categories SET name = ?, color = ?, type = ?
		WHERE id = ? AND user_id = ?`, c.Name, c.Color, string(c.Type), c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteCategory(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(rs rowScanner) (core.Transaction, error) {
	var r transactionRow
	err := rs.Scan(
		&r.ID, &r.UserID, &r.Type, &r.AmountCents, &r.Description, &r.TransactionDate,
		&r.DueDate, &r.CategoryID, &r.IsPaid, &r.IsFixed, &r.IsRecurring, &r.RecurringInterval,
		&r.IsInstallment, &r.InstallmentNumber, &r.InstallmentCount, &r.ParentID,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return core.Transaction{}, err
	}
	return r.toTransaction()
}
