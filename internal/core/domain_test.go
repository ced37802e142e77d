package core

import (
	"errors"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}

func TestCreateTransactionValidate(t *testing.T) {
	good := CreateTransaction{
		Type:   Expense,
		Amount: Money{Cents: 1500},
		Date:   NewDate(2025, 3, 10),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		ct   CreateTransaction
		want error
	}{
		{
			name: "bad type",
			ct:   CreateTransaction{Type: "transfer", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)},
			want: ErrInvalidType,
		},
		{
			name: "zero amount",
			ct:   CreateTransaction{Type: Income, Amount: Money{}, Date: NewDate(2025, 1, 1)},
			want: ErrInvalidAmount,
		},
		{
			name: "zero date",
			ct:   CreateTransaction{Type: Income, Amount: Money{Cents: 1}},
			want: ErrInvalidDate,
		},
		{
			name: "recurring without interval",
			ct:   CreateTransaction{Type: Expense, Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1), IsRecurring: true},
			want: ErrInvalidInterval,
		},
		{
			name: "installment count too low",
			ct:   CreateTransaction{Type: Expense, Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1), IsInstallment: true, InstallmentCount: 1},
			want: ErrInvalidInstallments,
		},
		{
			name: "installment count too high",
			ct:   CreateTransaction{Type: Expense, Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1), IsInstallment: true, InstallmentCount: 61},
			want: ErrInvalidInstallments,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ct.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCategoryValidate(t *testing.T) {
	good := Category{Name: "Groceries", Color: "#22C55E", Type: Expense}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Category{
		{Name: "", Color: "#22C55E", Type: Expense},
		{Name: "Groceries", Color: "22C55E", Type: Expense},  // missing #
		{Name: "Groceries", Color: "#22C5", Type: Expense},   // too short
		{Name: "Groceries", Color: "#22C55G", Type: Expense}, // bad hex digit
		{Name: "Groceries", Color: "#22C55E", Type: "other"},
	}
	for i, c := range bads {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestEffectiveDueDate(t *testing.T) {
	withDue := Transaction{Date: NewDate(2025, 1, 1), DueDate: NewDate(2025, 1, 15)}
	if got := withDue.EffectiveDueDate(); got.String() != "2025-01-15" {
		t.Fatalf("expected due date, got %s", got)
	}
	withoutDue := Transaction{Date: NewDate(2025, 1, 1)}
	if got := withoutDue.EffectiveDueDate(); got.String() != "2025-01-01" {
		t.Fatalf("expected transaction date fallback, got %s", got)
	}
}
