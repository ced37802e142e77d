package http

import (
	"log/slog"
	"net/http"

	"financas/internal/services"
)

// indexData is everything the shell page needs to render. The sections
// themselves load through the /ui/ partials.
type indexData struct {
	Year       int
	Month      int
	MonthLabel string
	Categories []categoryOption
}

type categoryOption struct {
	ID    string
	Name  string
	Color string
	Type  string
}

// handleIndex renders the application shell. Summary, transactions,
// bills and breakdown sections are HTMX placeholders that fetch their
// partials on load.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	month := ParseMonthParams(r.URL.Query(), s.now())
	cats, err := s.categories.List(r.Context(), nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load categories for index", "error", err)
		InternalServerError("Failed to load the page").Write(w)
		return
	}

	data := indexData{
		Year:       month.Year,
		Month:      month.Month,
		MonthLabel: month.Time().Format("January 2006"),
	}
	for _, c := range cats {
		data.Categories = append(data.Categories, categoryOption{
			ID: c.ID, Name: c.Name, Color: c.Color, Type: string(c.Type),
		})
	}

	s.render(w, r, "index.html", data)
}

// summaryData feeds the headline cards partial.
type summaryData struct {
	Year       int
	Month      int
	MonthLabel string
	Dashboard  services.DashboardData
}

// handleSummaryPartial re-renders the monthly totals block.
func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	month := ParseMonthParams(r.URL.Query(), s.now())
	data, err := s.transactions.Dashboard(r.Context(), month.Time(), s.categories)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build dashboard summary",
			"error", err, "year", month.Year, "month", month.Month)
		InternalServerError("Failed to load the summary").Write(w)
		return
	}

	s.render(w, r, "summary.html", summaryData{
		Year:       month.Year,
		Month:      month.Month,
		MonthLabel: month.Time().Format("January 2006"),
		Dashboard:  data,
	})
}

// handleBreakdownPartial re-renders the per-category table for a month.
func (s *Server) handleBreakdownPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	month := ParseMonthParams(r.URL.Query(), s.now())
	data, err := s.transactions.Dashboard(r.Context(), month.Time(), s.categories)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build category breakdown",
			"error", err, "year", month.Year, "month", month.Month)
		InternalServerError("Failed to load the breakdown").Write(w)
		return
	}

	s.render(w, r, "breakdown.html", summaryData{
		Year:       month.Year,
		Month:      month.Month,
		MonthLabel: month.Time().Format("January 2006"),
		Dashboard:  data,
	})
}
