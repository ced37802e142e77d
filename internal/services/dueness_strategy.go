// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for recurring-charge dueness
// checking. Each interval (weekly, monthly, yearly) has its own strategy
// that encapsulates the logic for determining if a new occurrence is due.

package services

import (
	"fmt"
	"time"

	"financas/internal/core"
)

// DuenessChecker is the strategy interface for checking if a recurring
// transaction is due. Each implementation encapsulates the algorithm for
// a specific interval.
type DuenessChecker interface {
	// IsDue returns true if a new occurrence should be created based on
	// the last occurrence time, the current time and the template's
	// anchor date.
	IsDue(lastOccurrence, now time.Time, anchor core.Date) bool
}

// WeeklyChecker implements DuenessChecker for weekly recurring charges.
type WeeklyChecker struct{}

// IsDue returns true if 7 or more days have passed since the last occurrence.
func (WeeklyChecker) IsDue(lastOccurrence, now time.Time, _ core.Date) bool {
	if lastOccurrence.IsZero() {
		return true
	}
	daysSince := now.Sub(lastOccurrence).Hours() / 24
	return daysSince >= 7
}

// MonthlyChecker implements DuenessChecker for monthly recurring charges.
type MonthlyChecker struct{}

// IsDue returns true if we're in a new month and have reached the anchor day.
func (MonthlyChecker) IsDue(lastOccurrence, now time.Time, anchor core.Date) bool {
	if lastOccurrence.IsZero() {
		return true
	}

	// Already occurred this month?
	if lastOccurrence.Year() == now.Year() && lastOccurrence.Month() == now.Month() {
		return false
	}

	// Anchor day, clamped when the current month is shorter
	targetDay := anchor.Day()
	lastDayOfMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if targetDay > lastDayOfMonth {
		targetDay = lastDayOfMonth
	}

	return now.Day() >= targetDay
}

// YearlyChecker implements DuenessChecker for yearly recurring charges.
type YearlyChecker struct{}

// IsDue returns true if we're in a new year and have reached the anchor
// month and day.
func (YearlyChecker) IsDue(lastOccurrence, now time.Time, anchor core.Date) bool {
	if lastOccurrence.IsZero() {
		return true
	}

	// Already occurred this year?
	if lastOccurrence.Year() == now.Year() {
		return false
	}

	targetMonth := anchor.Month()
	targetDay := anchor.Day()

	if int(now.Month()) < targetMonth {
		return false
	}

	if int(now.Month()) == targetMonth {
		lastDayOfMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
		if targetDay > lastDayOfMonth {
			targetDay = lastDayOfMonth
		}
		return now.Day() >= targetDay
	}

	// We're past the anchor month
	return true
}

// duenessStrategies maps intervals to their corresponding checkers.
var duenessStrategies = map[core.RecurringInterval]DuenessChecker{
	core.Weekly:  WeeklyChecker{},
	core.Monthly: MonthlyChecker{},
	core.Yearly:  YearlyChecker{},
}

// GetDuenessChecker returns the appropriate dueness checker for an
// interval. Returns an error if the interval is not supported.
func GetDuenessChecker(interval core.RecurringInterval) (DuenessChecker, error) {
	checker, ok := duenessStrategies[interval]
	if !ok {
		return nil, fmt.Errorf("unknown recurring interval: %s", interval)
	}
	return checker, nil
}
