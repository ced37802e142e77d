package core

import (
	"time"

	"github.com/google/uuid"
)

// AddMonthsClamped advances d by the given number of calendar months while
// keeping the original day of the month. When the target month is shorter
// the day is clamped to its last day; the anchor day is preserved for the
// computation, so later months recover it:
//
//	2024-01-31 +1 -> 2024-02-29, +2 -> 2024-03-31
func AddMonthsClamped(d Date, months int) Date {
	year, month, day := d.Time.Date()
	m := int(month) + months
	y := year + (m-1)/12
	m = (m-1)%12 + 1
	if m < 1 {
		m += 12
		y--
	}
	if last := daysInMonth(y, m); day > last {
		day = last
	}
	return NewDate(y, m, day)
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ExpandInstallments turns a creation request into the rows to persist.
//
// A non-installment request yields a single row. An installment plan with
// count N yields N rows dated one calendar month apart (month-end clamped
// against the first row's day), numbered 1..N. The first row keeps the
// requested paid flag; the rest start unpaid and reference the first row
// through ParentID. The caller persists the whole slice as one batch.
func ExpandInstallments(ct CreateTransaction, userID string, now time.Time) []Transaction {
	base := Transaction{
		ID:                uuid.New().String(),
		UserID:            userID,
		Type:              ct.Type,
		Amount:            ct.Amount,
		Description:       ct.Description,
		Date:              ct.Date,
		DueDate:           ct.DueDate,
		CategoryID:        ct.CategoryID,
		IsPaid:            ct.IsPaid,
		IsFixed:           ct.IsFixed,
		IsRecurring:       ct.IsRecurring,
		RecurringInterval: ct.RecurringInterval,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if !ct.IsInstallment {
		return []Transaction{base}
	}

	n := ct.InstallmentCount
	rows := make([]Transaction, 0, n)

	first := base
	first.IsInstallment = true
	first.InstallmentNumber = 1
	first.InstallmentCount = n
	rows = append(rows, first)

	for i := 2; i <= n; i++ {
		row := base
		row.ID = uuid.New().String()
		row.ParentID = first.ID
		row.IsPaid = false
		row.IsInstallment = true
		row.InstallmentNumber = i
		row.InstallmentCount = n
		row.Date = AddMonthsClamped(ct.Date, i-1)
		if !ct.DueDate.IsEmpty() {
			row.DueDate = AddMonthsClamped(ct.DueDate, i-1)
		}
		rows = append(rows, row)
	}
	return rows
}
