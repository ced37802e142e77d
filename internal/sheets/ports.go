package sheets

import (
	"context"

	"financas/internal/core"
)

// Row is one transaction as it appears in the backup spreadsheet. The
// transaction ID in the first column is what makes rows addressable for
// later updates and deletes.
type Row struct {
	TransactionID string
	Date          core.Date
	Type          core.TransactionType
	Category      string
	Description   string
	Amount        core.Money
	IsPaid        bool
}

// Ports for outbound adapters.
type (
	Writer interface {
		Append(ctx context.Context, row Row) (rowRef string, err error)
	}

	Deleter interface {
		// DeleteByTransactionID removes the row whose first column holds
		// the given transaction ID. Missing rows are not an error.
		DeleteByTransactionID(ctx context.Context, id string) error
	}
)
