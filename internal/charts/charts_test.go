package charts

import (
	"bytes"
	"errors"
	"testing"

	"financas/internal/core"
	"financas/internal/reports"
)

func TestExpenseBreakdown(t *testing.T) {
	g := NewGenerator()

	t.Run("no expense activity", func(t *testing.T) {
		_, err := g.ExpenseBreakdown([]reports.CategoryTotal{
			{Name: "Salary", Color: "#22C55E", Income: core.Money{Cents: 100000}},
		})
		if !errors.Is(err, ErrNoData) {
			t.Fatalf("ExpenseBreakdown() error = %v, want ErrNoData", err)
		}
	})

	t.Run("renders a png", func(t *testing.T) {
		png, err := g.ExpenseBreakdown([]reports.CategoryTotal{
			{Name: "Housing", Color: "#EF4444", Expenses: core.Money{Cents: 120000}},
			{Name: "Groceries", Color: "#F59E0B", Expenses: core.Money{Cents: 45000}},
		})
		if err != nil {
			t.Fatalf("ExpenseBreakdown() error = %v", err)
		}
		if !bytes.HasPrefix(png, []byte("\x89PNG")) {
			t.Error("ExpenseBreakdown() did not produce a PNG")
		}
	})
}

func TestColorFromHex(t *testing.T) {
	c := colorFromHex("#EF4444")
	if c.R != 0xEF || c.G != 0x44 || c.B != 0x44 {
		t.Errorf("colorFromHex(#EF4444) = %+v", c)
	}
	if colorFromHex("red") != colorFromHex("zzz") {
		t.Error("malformed colors should share the fallback")
	}
}
