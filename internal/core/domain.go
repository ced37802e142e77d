package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Weekly  RecurringInterval = "weekly"
	Monthly RecurringInterval = "monthly"
	Yearly  RecurringInterval = "yearly"
)

const (
	// MinInstallments and MaxInstallments bound the size of an installment plan.
	MinInstallments = 2
	MaxInstallments = 60

	maxDescriptionLength = 200
)

type (
	TransactionType   string
	RecurringInterval string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Category is a user-defined label with a display color.
	// Type restricts which transactions it can be attached to.
	Category struct {
		ID        string
		UserID    string
		Name      string
		Color     string
		Type      TransactionType
		CreatedAt time.Time
	}

	// Transaction is one financial movement. Installment rows produced
	// from the same plan share InstallmentCount and link back to the
	// first row via ParentID.
	Transaction struct {
		ID                string
		UserID            string
		Type              TransactionType
		Amount            Money
		Description       string
		Date              Date // when the movement happened (or was paid)
		DueDate           Date // zero when the transaction has no due date
		CategoryID        string
		IsPaid            bool
		IsFixed           bool
		IsRecurring       bool
		RecurringInterval RecurringInterval
		IsInstallment     bool
		InstallmentNumber int
		InstallmentCount  int
		ParentID          string
		CreatedAt         time.Time
		UpdatedAt         time.Time
	}

	// CreateTransaction carries the user's intent before expansion into
	// persisted rows. For installment plans it describes the whole plan,
	// not a single row.
	CreateTransaction struct {
		Type              TransactionType
		Amount            Money
		Description       string
		Date              Date
		DueDate           Date
		CategoryID        string
		IsPaid            bool
		IsFixed           bool
		IsRecurring       bool
		RecurringInterval RecurringInterval
		IsInstallment     bool
		InstallmentCount  int
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidInterval     = errors.New("invalid recurring interval")
	ErrInvalidInstallments = errors.New("invalid installment count")
	ErrEmptyCategoryName   = errors.New("empty category name")
	ErrInvalidColor        = errors.New("invalid category color")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrNotFound            = errors.New("not found")
)

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (i RecurringInterval) Validate() error {
	switch i {
	case Weekly, Monthly, Yearly:
		return nil
	default:
		return ErrInvalidInterval
	}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to day precision in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// IsEmpty returns true if the date is zero (optional dates)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyCategoryName
	}
	if len(c.Name) > 50 {
		return errors.New("category name too long (max 50 characters)")
	}
	if !validHexColor(c.Color) {
		return ErrInvalidColor
	}
	return c.Type.Validate()
}

func (ct CreateTransaction) Validate() error {
	if err := ct.Type.Validate(); err != nil {
		return err
	}
	if err := ct.Amount.Validate(); err != nil {
		return err
	}
	if err := ct.Date.Validate(); err != nil {
		return fmt.Errorf("transaction date: %w", err)
	}
	if len(ct.Description) > maxDescriptionLength {
		return errors.New("description too long (max 200 characters)")
	}
	if ct.IsRecurring {
		if err := ct.RecurringInterval.Validate(); err != nil {
			return err
		}
	}
	if ct.IsInstallment {
		if ct.InstallmentCount < MinInstallments || ct.InstallmentCount > MaxInstallments {
			return ErrInvalidInstallments
		}
		if ct.IsRecurring {
			return errors.New("transaction cannot be both recurring and installment")
		}
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return fmt.Errorf("transaction date: %w", err)
	}
	if t.IsInstallment {
		if t.InstallmentCount < MinInstallments || t.InstallmentCount > MaxInstallments {
			return ErrInvalidInstallments
		}
		if t.InstallmentNumber < 1 || t.InstallmentNumber > t.InstallmentCount {
			return ErrInvalidInstallments
		}
	}
	return nil
}

// EffectiveDueDate is the date bills and upcoming-charge views key off:
// the due date when set, the transaction date otherwise.
func (t Transaction) EffectiveDueDate() Date {
	if !t.DueDate.IsEmpty() {
		return t.DueDate
	}
	return t.Date
}

func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
