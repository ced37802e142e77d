package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"strings"
	"time"

	"financas/internal/core"
)

// templateFuncs are the helpers available inside every template.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":     formatAmount,
		"shortDate": func(d core.Date) string { return d.Format("Jan 2") },
	}
}

// formatAmount renders integer cents as a currency string (e.g. "$12.34").
func formatAmount(m core.Money) string {
	if m.Cents < 0 {
		return "-$" + core.FormatCents(-m.Cents)
	}
	return "$" + core.FormatCents(m.Cents)
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: parsedTime.UTC()}, nil
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
