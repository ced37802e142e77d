package http

import (
	"errors"
	"log/slog"
	"net/http"

	"financas/internal/charts"
	"financas/internal/reports"
	"financas/internal/storage"
)

// handleExportCSV streams the transaction export. Without query
// parameters it exports everything; year/month narrow it to one month.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	var filter storage.TransactionFilter
	query := r.URL.Query()
	if query.Get("year") != "" || query.Get("month") != "" {
		month := ParseMonthParams(query, s.now())
		window := reports.MonthWindow(month.Time())
		lastDay := window.LastDay()
		filter.From = &window.Start
		filter.To = &lastDay
	}

	txs, err := s.transactions.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions for export", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	cats, err := s.categories.List(r.Context(), nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list categories for export", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+reports.ExportFilename(s.now())+`"`)
	if err := reports.WriteCSV(w, txs, cats); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write CSV export", "error", err)
	}
}

// handleBreakdownChart renders the month's expense breakdown as a PNG
// pie chart.
func (s *Server) handleBreakdownChart(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	month := ParseMonthParams(r.URL.Query(), s.now())
	data, err := s.transactions.Dashboard(r.Context(), month.Time(), s.categories)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build chart data",
			"error", err, "year", month.Year, "month", month.Month)
		http.Error(w, "chart failed", http.StatusInternalServerError)
		return
	}

	png, err := s.charts.ExpenseBreakdown(data.ByCategory)
	if err != nil {
		if errors.Is(err, charts.ErrNoData) {
			http.Error(w, "no expense data for this month", http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to render chart",
			"error", err, "year", month.Year, "month", month.Month)
		http.Error(w, "chart failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
