package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"financas/internal/core"
)

// WriteCSV streams transactions as a spreadsheet-friendly export:
// one row per transaction with date, type label, category name,
// description and the amount with two decimals.
func WriteCSV(w io.Writer, txs []core.Transaction, cats []core.Category) error {
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Type", "Category", "Description", "Amount"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		label := "Expense"
		if tx.Type == core.Income {
			label = "Income"
		}
		category := names[tx.CategoryID]
		if category == "" {
			category = "Uncategorized"
		}
		row := []string{
			tx.Date.String(),
			label,
			category,
			tx.Description,
			tx.Amount.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename builds a timestamped download name for the CSV export.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("transactions-%s.csv", now.Format("2006-01-02-150405"))
}
