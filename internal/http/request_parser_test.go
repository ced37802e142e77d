package http

import (
	"net/url"
	"testing"
	"time"
)

func TestParseCheckbox(t *testing.T) {
	for _, v := range []string{"on", "true", "1", "yes", "ON", " true "} {
		if !parseCheckbox(v) {
			t.Errorf("parseCheckbox(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "off", "false", "0", "no"} {
		if parseCheckbox(v) {
			t.Errorf("parseCheckbox(%q) = true, want false", v)
		}
	}
}

func TestParseMonthParams(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("defaults to current month", func(t *testing.T) {
		p := ParseMonthParams(url.Values{}, now)
		if p.Year != 2025 || p.Month != 3 {
			t.Errorf("ParseMonthParams() = %+v", p)
		}
	})

	t.Run("explicit year and month", func(t *testing.T) {
		p := ParseMonthParams(url.Values{"year": {"2024"}, "month": {"12"}}, now)
		if p.Year != 2024 || p.Month != 12 {
			t.Errorf("ParseMonthParams() = %+v", p)
		}
	})

	t.Run("out of range month falls back", func(t *testing.T) {
		p := ParseMonthParams(url.Values{"month": {"13"}}, now)
		if p.Month != 3 {
			t.Errorf("month = %d, want 3", p.Month)
		}
	})

	t.Run("Time is the first of the month", func(t *testing.T) {
		p := MonthParams{Year: 2025, Month: 2}
		want := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		if !p.Time().Equal(want) {
			t.Errorf("Time() = %v, want %v", p.Time(), want)
		}
	})
}
