// Package charts renders report figures as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"financas/internal/reports"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no chart data")

// Generator renders the report views that need an image rather than a
// table.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// ExpenseBreakdown renders the category breakdown as a pie chart, one
// slice per category in its display color. Slices below one percent of
// the total are folded into an "Other" slice to keep labels readable.
func (g *Generator) ExpenseBreakdown(breakdown []reports.CategoryTotal) ([]byte, error) {
	var total int64
	for _, b := range breakdown {
		total += b.Expenses.Cents
	}
	if total == 0 {
		return nil, ErrNoData
	}

	values := make([]chart.Value, 0, len(breakdown))
	var otherCents int64
	for _, b := range breakdown {
		if b.Expenses.Cents == 0 {
			continue
		}
		percentage := float64(b.Expenses.Cents) / float64(total) * 100
		if percentage <= 1.0 {
			otherCents += b.Expenses.Cents
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s (%.1f%%)", b.Name, b.Expenses, percentage),
			Value: float64(b.Expenses.Cents) / 100.0,
			Style: chart.Style{
				FillColor: colorFromHex(b.Color),
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}
	if otherCents > 0 {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("Other: %.1f%%", float64(otherCents)/float64(total)*100),
			Value: float64(otherCents) / 100.0,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render expense breakdown: %w", err)
	}
	return buffer.Bytes(), nil
}

// colorFromHex maps a "#RRGGBB" category color onto a chart color,
// falling back to the default palette color for malformed values.
func colorFromHex(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(hex)
}
