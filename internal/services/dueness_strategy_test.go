package services

import (
	"testing"
	"time"

	"financas/internal/core"
)

func TestWeeklyChecker_IsDue(t *testing.T) {
	checker := WeeklyChecker{}
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	anchor := core.NewDate(2024, 1, 1)

	tests := []struct {
		name           string
		lastOccurrence time.Time
		want           bool
	}{
		{
			name:           "never occurred - is due",
			lastOccurrence: time.Time{},
			want:           true,
		},
		{
			name:           "occurred 3 days ago - not due",
			lastOccurrence: time.Date(2024, 1, 12, 12, 0, 0, 0, time.UTC),
			want:           false,
		},
		{
			name:           "occurred 7 days ago - is due",
			lastOccurrence: time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC),
			want:           true,
		},
		{
			name:           "occurred 10 days ago - is due",
			lastOccurrence: time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
			want:           true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.IsDue(tt.lastOccurrence, now, anchor)
			if got != tt.want {
				t.Errorf("WeeklyChecker.IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthlyChecker_IsDue(t *testing.T) {
	checker := MonthlyChecker{}

	tests := []struct {
		name           string
		lastOccurrence time.Time
		now            time.Time
		anchor         core.Date
		want           bool
	}{
		{
			name:           "never occurred - is due",
			lastOccurrence: time.Time{},
			now:            time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			anchor:         core.NewDate(2024, 1, 10),
			want:           true,
		},
		{
			name:           "occurred this month - not due",
			lastOccurrence: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
			now:            time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			anchor:         core.NewDate(2024, 1, 10),
			want:           false,
		},
		{
			name:           "new month but before anchor day - not due",
			lastOccurrence: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			now:            time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC),
			anchor:         core.NewDate(2024, 1, 15),
			want:           false,
		},
		{
			name:           "new month and on anchor day - is due",
			lastOccurrence: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			now:            time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC),
			anchor:         core.NewDate(2024, 1, 15),
			want:           true,
		},
		{
			name:           "anchor day 31 in February - clamps to 29",
			lastOccurrence: time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
			now:            time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), // 2024 is a leap year
			anchor:         core.NewDate(2024, 1, 31),
			want:           true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.IsDue(tt.lastOccurrence, tt.now, tt.anchor)
			if got != tt.want {
				t.Errorf("MonthlyChecker.IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYearlyChecker_IsDue(t *testing.T) {
	checker := YearlyChecker{}

	tests := []struct {
		name           string
		lastOccurrence time.Time
		now            time.Time
		anchor         core.Date
		want           bool
	}{
		{
			name:           "never occurred - is due",
			lastOccurrence: time.Time{},
			now:            time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
			anchor:         core.NewDate(2024, 3, 15),
			want:           true,
		},
		{
			name:           "occurred this year - not due",
			lastOccurrence: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
			now:            time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
			anchor:         core.NewDate(2024, 3, 15),
			want:           false,
		},
		{
			name:           "new year but before anchor month - not due",
			lastOccurrence: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
			now:            time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
			anchor:         core.NewDate(2024, 6, 15),
			want:           false,
		},
		{
			name:           "new year and past anchor month - is due",
			lastOccurrence: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
			now:            time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
			anchor:         core.NewDate(2024, 3, 15),
			want:           true,
		},
		{
			name:           "new year same month before anchor day - not due",
			lastOccurrence: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
			now:            time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
			anchor:         core.NewDate(2024, 6, 15),
			want:           false,
		},
		{
			name:           "new year same month on anchor day - is due",
			lastOccurrence: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
			now:            time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
			anchor:         core.NewDate(2024, 6, 15),
			want:           true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.IsDue(tt.lastOccurrence, tt.now, tt.anchor)
			if got != tt.want {
				t.Errorf("YearlyChecker.IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetDuenessChecker(t *testing.T) {
	tests := []struct {
		name     string
		interval core.RecurringInterval
		wantErr  bool
	}{
		{"weekly", core.Weekly, false},
		{"monthly", core.Monthly, false},
		{"yearly", core.Yearly, false},
		{"unknown", core.RecurringInterval("biweekly"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker, err := GetDuenessChecker(tt.interval)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetDuenessChecker() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && checker == nil {
				t.Error("GetDuenessChecker() returned nil checker")
			}
		})
	}
}
