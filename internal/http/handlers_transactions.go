package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"financas/internal/core"
	"financas/internal/reports"
	"financas/internal/storage"
)

// handleCreateTransaction records a new movement from the entry form.
// Installment plans expand server-side; the client only sends the plan.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	ct := core.CreateTransaction{
		Type:          core.TransactionType(r.FormValue("type")),
		Description:   sanitizeInput(r.FormValue("description")),
		CategoryID:    r.FormValue("category_id"),
		IsPaid:        parseCheckbox(r.FormValue("is_paid")),
		IsFixed:       parseCheckbox(r.FormValue("is_fixed")),
		IsRecurring:   parseCheckbox(r.FormValue("is_recurring")),
		IsInstallment: parseCheckbox(r.FormValue("is_installment")),
	}

	amount, err := core.ParseMoney(r.FormValue("amount"))
	if err != nil {
		UnprocessableEntityError("Enter a valid amount").
			TriggerErrorNotification("Enter a valid amount").
			Write(w)
		return
	}
	ct.Amount = amount

	ct.Date = core.DateOf(s.now())
	if v := r.FormValue("date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			UnprocessableEntityError("Enter a valid date").
				TriggerErrorNotification("Enter a valid date").
				Write(w)
			return
		}
		ct.Date = d
	}
	if v := r.FormValue("due_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			UnprocessableEntityError("Enter a valid due date").
				TriggerErrorNotification("Enter a valid due date").
				Write(w)
			return
		}
		ct.DueDate = d
	}

	if ct.IsRecurring {
		ct.RecurringInterval = core.RecurringInterval(r.FormValue("recurring_interval"))
	}
	if ct.IsInstallment {
		n, err := strconv.Atoi(r.FormValue("installment_count"))
		if err != nil {
			UnprocessableEntityError("Enter a valid number of installments").
				TriggerErrorNotification("Enter a valid number of installments").
				Write(w)
			return
		}
		ct.InstallmentCount = n
	}

	rows, err := s.transactions.Create(r.Context(), ct)
	if err != nil {
		s.writeTransactionError(w, r, "create", err)
		return
	}

	message := "Transaction saved"
	if len(rows) > 1 {
		message = "Installment plan saved (" + strconv.Itoa(len(rows)) + " transactions)"
	}
	NewHTMXResponse().
		TriggerTransactionCreated(ct.Date.Year(), ct.Date.Month()).
		TriggerFormReset().
		TriggerSuccessNotification(message).
		Write(w)
}

// handleUpdateTransaction applies the edited fields of one transaction.
// Only fields present in the form are touched.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
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

	var changes storage.TransactionChanges
	if v := r.FormValue("amount"); v != "" {
		amount, err := core.ParseMoney(v)
		if err != nil {
			UnprocessableEntityError("Enter a valid amount").
				TriggerErrorNotification("Enter a valid amount").
				Write(w)
			return
		}
		changes.Amount = &amount
	}
	if _, ok := r.Form["description"]; ok {
		desc := sanitizeInput(r.FormValue("description"))
		changes.Description = &desc
	}
	if v := r.FormValue("date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			UnprocessableEntityError("Enter a valid date").
				TriggerErrorNotification("Enter a valid date").
				Write(w)
			return
		}
		changes.Date = &d
	}
	if _, ok := r.Form["due_date"]; ok {
		d := core.Date{}
		if v := r.FormValue("due_date"); v != "" {
			parsed, err := parseDate(v)
			if err != nil {
				UnprocessableEntityError("Enter a valid due date").
					TriggerErrorNotification("Enter a valid due date").
					Write(w)
				return
			}
			d = parsed
		}
		changes.DueDate = &d
	}
	if _, ok := r.Form["category_id"]; ok {
		cat := r.FormValue("category_id")
		changes.CategoryID = &cat
	}
	if _, ok := r.Form["is_paid"]; ok {
		paid := parseCheckbox(r.FormValue("is_paid"))
		changes.IsPaid = &paid
	}
	if _, ok := r.Form["is_fixed"]; ok {
		fixed := parseCheckbox(r.FormValue("is_fixed"))
		changes.IsFixed = &fixed
	}

	if err := s.transactions.Update(r.Context(), id, changes); err != nil {
		s.writeTransactionError(w, r, "update", err)
		return
	}

	month := ParseMonthParams(r.Form, s.now())
	NewHTMXResponse().
		TriggerTransactionUpdated(month.Year, month.Month).
		TriggerSuccessNotification("Transaction updated").
		Write(w)
}

// handleDeleteTransaction removes one transaction. Installment siblings
// survive; each row is deleted on its own.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id := r.FormValue("id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		BadRequestError("Missing transaction id").Write(w)
		return
	}

	if err := s.transactions.Delete(r.Context(), id); err != nil {
		s.writeTransactionError(w, r, "delete", err)
		return
	}

	month := ParseMonthParams(r.Form, s.now())
	NewHTMXResponse().
		TriggerTransactionDeleted(month.Year, month.Month).
		TriggerSuccessNotification("Transaction deleted").
		Write(w)
}

// transactionsData feeds the transaction list partial.
type transactionsData struct {
	Year         int
	Month        int
	Transactions []core.Transaction
	Names        map[string]string
	Colors       map[string]string
}

// handleTransactionsPartial renders the filtered transaction list for a
// month. An optional type parameter narrows it to income or expenses.
func (s *Server) handleTransactionsPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	month := ParseMonthParams(r.URL.Query(), s.now())
	window := reports.MonthWindow(month.Time())
	lastDay := window.LastDay()
	filter := storage.TransactionFilter{From: &window.Start, To: &lastDay}
	if v := r.URL.Query().Get("type"); v != "" {
		typ := core.TransactionType(v)
		if err := typ.Validate(); err != nil {
			BadRequestError("Unknown transaction type").Write(w)
			return
		}
		filter.Type = &typ
	}

	txs, err := s.transactions.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions",
			"error", err, "year", month.Year, "month", month.Month)
		InternalServerError("Failed to load transactions").Write(w)
		return
	}
	cats, err := s.categories.List(r.Context(), nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list categories", "error", err)
		InternalServerError("Failed to load transactions").Write(w)
		return
	}

	data := transactionsData{
		Year:         month.Year,
		Month:        month.Month,
		Transactions: txs,
		Names:        make(map[string]string, len(cats)),
		Colors:       make(map[string]string, len(cats)),
	}
	for _, c := range cats {
		data.Names[c.ID] = c.Name
		data.Colors[c.ID] = c.Color
	}

	s.render(w, r, "transactions.html", data)
}

// writeTransactionError maps service errors onto HTMX error responses.
func (s *Server) writeTransactionError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, core.ErrNotAuthenticated):
		ErrorResponse(http.StatusUnauthorized, "Sign in to continue").Write(w)
	case errors.Is(err, core.ErrNotFound):
		NotFoundError("Transaction not found").Write(w)
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidInterval),
		errors.Is(err, core.ErrInvalidInstallments):
		UnprocessableEntityError(err.Error()).
			TriggerErrorNotification(err.Error()).
			Write(w)
	default:
		slog.ErrorContext(r.Context(), "Transaction operation failed", "op", op, "error", err)
		InternalServerError("Something went wrong, please retry").
			TriggerErrorNotification("Something went wrong, please retry").
			Write(w)
	}
}
