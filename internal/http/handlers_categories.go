package http

import (
	"errors"
	"log/slog"
	"net/http"

	"financas/internal/core"
)

// handleCategoriesPartial renders the category palette, optionally
// narrowed to one transaction type for the entry form selects.
func (s *Server) handleCategoriesPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	var typ *core.TransactionType
	if v := r.URL.Query().Get("type"); v != "" {
		t := core.TransactionType(v)
		if err := t.Validate(); err != nil {
			BadRequestError("Unknown transaction type").Write(w)
			return
		}
		typ = &t
	}

	cats, err := s.categories.List(r.Context(), typ)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list categories", "error", err)
		InternalServerError("Failed to load categories").Write(w)
		return
	}

	s.render(w, r, "categories.html", cats)
}

// handleCreateCategory adds a new label to the palette.
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	c := core.Category{
		Name:  sanitizeInput(r.FormValue("name")),
		Color: r.FormValue("color"),
		Type:  core.TransactionType(r.FormValue("type")),
	}

	created, err := s.categories.Create(r.Context(), c)
	if err != nil {
		s.writeCategoryError(w, r, "create", err)
		return
	}

	slog.InfoContext(r.Context(), "Category created via web", "category_id", created.ID)
	NewHTMXResponse().
		TriggerCategoryChanged().
		TriggerFormReset().
		TriggerSuccessNotification("Category created").
		Write(w)
}

// handleUpdateCategory renames or recolors a category.
func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	c := core.Category{
		ID:    r.FormValue("id"),
		Name:  sanitizeInput(r.FormValue("name")),
		Color: r.FormValue("color"),
		Type:  core.TransactionType(r.FormValue("type")),
	}
	if c.ID == "" {
		BadRequestError("Missing category id").Write(w)
		return
	}

	if err := s.categories.Update(r.Context(), c); err != nil {
		s.writeCategoryError(w, r, "update", err)
		return
	}

	NewHTMXResponse().
		TriggerCategoryChanged().
		TriggerSuccessNotification("Category updated").
		Write(w)
}

// handleDeleteCategory removes a category; its transactions fall back
// into the uncategorized bucket.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
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
		BadRequestError("Missing category id").Write(w)
		return
	}

	if err := s.categories.Delete(r.Context(), id); err != nil {
		s.writeCategoryError(w, r, "delete", err)
		return
	}

	NewHTMXResponse().
		TriggerCategoryChanged().
		TriggerSuccessNotification("Category deleted").
		Write(w)
}

func (s *Server) writeCategoryError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, core.ErrNotAuthenticated):
		ErrorResponse(http.StatusUnauthorized, "Sign in to continue").Write(w)
	case errors.Is(err, core.ErrNotFound):
		NotFoundError("Category not found").Write(w)
	case errors.Is(err, core.ErrEmptyCategoryName),
		errors.Is(err, core.ErrInvalidColor),
		errors.Is(err, core.ErrInvalidType):
		UnprocessableEntityError(err.Error()).
			TriggerErrorNotification(err.Error()).
			Write(w)
	default:
		slog.ErrorContext(r.Context(), "Category operation failed", "op", op, "error", err)
		InternalServerError("Something went wrong, please retry").
			TriggerErrorNotification("Something went wrong, please retry").
			Write(w)
	}
}
