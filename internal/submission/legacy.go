package submission

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anikett35/MediMage/internal/httputil"

	"github.com/go-chi/chi/v5"
)

// Routes under /contact keep the response envelope the existing web front end reads.

type legacyResponse struct {
	Success        bool         `json:"success"`
	Message        string       `json:"message,omitempty"`
	DeletedContact *Submission `json:"deletedContact,omitempty"`
	DeletedCount   *int64       `json:"deletedCount,omitempty"`
	Contact        *Submission `json:"contact,omitempty"`
}

type legacyViewResponse struct {
	Success  bool         `json:"success"`
	Total    int          `json:"total"`
	Contacts []Submission `json:"contacts"`
}

func (h *Handler) RegisterLegacyRoutes(router chi.Router) {
	router.Route("/contact", func(r chi.Router) {
		r.Post("/submit", h.legacySubmit)
		r.Get("/view", h.legacyView)
		r.Delete("/delete-all", h.legacyDeleteAll)
		r.Delete("/delete/{id}", h.legacyDelete)
		r.Put("/update-status/{id}", h.legacyUpdateStatus)
	})
}

func (h *Handler) legacySubmit(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.legacyError(w, http.StatusBadRequest, "Please fill all required fields")
		return
	}

	if _, err := h.service.Create(r.Context(), req); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			h.legacyError(w, http.StatusBadRequest, "Please fill all required fields")
			return
		}
		h.logger.ErrorContext(r.Context(), "error submitting form", "error", err)
		h.legacyError(w, http.StatusInternalServerError, "Internal server error. Please try again later.")
		return
	}

	httputil.RespondWithJSON(w, http.StatusCreated, legacyResponse{
		Success: true,
		Message: "Form submitted successfully! We will contact you within 2-4 hours during business hours.",
	})
}

func (h *Handler) legacyView(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "error fetching contacts", "error", err)
		h.legacyError(w, http.StatusInternalServerError, "Error fetching contacts")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, legacyViewResponse{
		Success:  true,
		Total:    len(submissions),
		Contacts: submissions,
	})
}

func (h *Handler) legacyDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			h.legacyError(w, http.StatusNotFound, "Contact not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "error deleting contact", "error", err)
		h.legacyError(w, http.StatusInternalServerError, "Error deleting contact")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, legacyResponse{
		Success:        true,
		Message:        "Contact deleted successfully",
		DeletedContact: deleted,
	})
}

func (h *Handler) legacyDeleteAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.DeleteAll(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "error deleting all contacts", "error", err)
		h.legacyError(w, http.StatusInternalServerError, "Error deleting contacts")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, legacyResponse{
		Success:      true,
		Message:      fmt.Sprintf("Deleted %d contacts successfully", count),
		DeletedCount: &count,
	})
}

func (h *Handler) legacyUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.legacyError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.legacyError(w, http.StatusBadRequest, validationErr.Message)
		case errors.Is(err, ErrSubmissionNotFound):
			h.legacyError(w, http.StatusNotFound, "Contact not found")
		default:
			h.logger.ErrorContext(r.Context(), "error updating status", "error", err)
			h.legacyError(w, http.StatusInternalServerError, "Error updating status")
		}
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, legacyResponse{
		Success: true,
		Message: "Status updated successfully",
		Contact: updated,
	})
}

func (h *Handler) legacyError(w http.ResponseWriter, code int, message string) {
	httputil.RespondWithJSON(w, code, legacyResponse{Success: false, Message: message})
}
