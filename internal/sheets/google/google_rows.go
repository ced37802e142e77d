package google

import (
	ports "financas/internal/sheets"
)

// rowValues lays a backup row out across columns A..G. Amounts are
// written as decimal numbers so the spreadsheet can sum them.
func rowValues(row ports.Row) []any {
	paid := "no"
	if row.IsPaid {
		paid = "yes"
	}
	return []any{
		row.TransactionID,
		row.Date.String(),
		string(row.Type),
		row.Category,
		row.Description,
		row.Amount.Float(),
		paid,
	}
}
