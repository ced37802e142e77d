package http

import (
	"log/slog"
	"net/http"

	"financas/internal/core"
	"financas/internal/reports"
)

// billsData feeds the bills partial: the three-way split plus totals
// for the section headers.
type billsData struct {
	Bills         reports.Bills
	OverdueTotal  core.Money
	UpcomingTotal core.Money
	Names         map[string]string
}

// handleBillsPartial renders overdue and upcoming unpaid expenses plus
// the bills already settled this month.
func (s *Server) handleBillsPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	bills, err := s.transactions.Bills(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load bills", "error", err)
		InternalServerError("Failed to load bills").Write(w)
		return
	}
	cats, err := s.categories.List(r.Context(), nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list categories", "error", err)
		InternalServerError("Failed to load bills").Write(w)
		return
	}

	data := billsData{
		Bills:         bills,
		OverdueTotal:  reports.Total(bills.Overdue),
		UpcomingTotal: reports.Total(bills.Upcoming),
		Names:         make(map[string]string, len(cats)),
	}
	for _, c := range cats {
		data.Names[c.ID] = c.Name
	}

	s.render(w, r, "bills.html", data)
}

// handleMarkPaid settles a bill. The transaction date moves to today;
// the summary and the bills list both refresh off the triggers.
func (s *Server) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id := r.FormValue("id")
	if id == "" {
		BadRequestError("Missing transaction id").Write(w)
		return
	}

	if err := s.transactions.MarkPaid(r.Context(), id); err != nil {
		s.writeTransactionError(w, r, "mark paid", err)
		return
	}

	today := s.now()
	NewHTMXResponse().
		TriggerBillPaid().
		TriggerTransactionUpdated(today.Year(), int(today.Month())).
		TriggerSuccessNotification("Bill marked as paid").
		Write(w)
}
