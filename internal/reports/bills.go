package reports

import (
	"sort"
	"time"

	"financas/internal/core"
)

// UpcomingHorizonDays is how far ahead the bills view looks.
const UpcomingHorizonDays = 7

// Bill is an unpaid expense annotated for the bills view.
type Bill struct {
	core.Transaction
	DaysUntil int // calendar days until the effective due date; 0 = today
}

// Bills is the three-way split the bills page renders.
type Bills struct {
	Overdue       []Bill
	Upcoming      []Bill
	PaidThisMonth []core.Transaction
}

// ClassifyBills partitions expenses relative to now's calendar day.
//
// Overdue: unpaid, effective due date strictly before today.
// Upcoming: unpaid, due today through today+7 inclusive.
// PaidThisMonth: paid expenses dated in now's calendar month.
// Unpaid expenses due beyond the horizon are left out entirely. Overdue
// and Upcoming never overlap and come back ordered by due date.
func ClassifyBills(txs []core.Transaction, now time.Time) Bills {
	today := core.DateOf(now)
	horizon := core.Date{Time: today.AddDate(0, 0, UpcomingHorizonDays)}
	month := MonthWindow(now)

	var b Bills
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		if tx.IsPaid {
			if month.Contains(tx.Date) {
				b.PaidThisMonth = append(b.PaidThisMonth, tx)
			}
			continue
		}
		due := tx.EffectiveDueDate()
		switch {
		case due.Before(today.Time):
			b.Overdue = append(b.Overdue, Bill{Transaction: tx, DaysUntil: -daysBetween(due, today)})
		case !due.After(horizon.Time):
			b.Upcoming = append(b.Upcoming, Bill{Transaction: tx, DaysUntil: daysBetween(today, due)})
		}
	}

	byDue := func(bills []Bill) func(i, j int) bool {
		return func(i, j int) bool {
			return bills[i].EffectiveDueDate().Before(bills[j].EffectiveDueDate().Time)
		}
	}
	sort.SliceStable(b.Overdue, byDue(b.Overdue))
	sort.SliceStable(b.Upcoming, byDue(b.Upcoming))
	sort.SliceStable(b.PaidThisMonth, func(i, j int) bool {
		return b.PaidThisMonth[j].Date.Before(b.PaidThisMonth[i].Date.Time)
	})
	return b
}

// daysBetween counts whole calendar days from a to b (both day-precision).
func daysBetween(a, b core.Date) int {
	return int(b.Time.Sub(a.Time).Hours() / 24)
}

// Total sums the amounts of a bill list in cents.
func Total(bills []Bill) core.Money {
	var m core.Money
	for _, b := range bills {
		m.Cents += b.Amount.Cents
	}
	return m
}
