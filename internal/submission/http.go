package submission

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/anikett35/MediMage/internal/httputil"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/submissions", func(r chi.Router) {
		r.Post("/", h.CreateSubmission)
		r.Get("/", h.ListSubmissions)
		r.Delete("/", h.DeleteAllSubmissions)
		r.Delete("/{id}", h.DeleteSubmission)
		r.Put("/{id}/status", h.UpdateSubmissionStatus)
	})
}

func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, ListResponse{
		Total: len(submissions),
		Items: submissions,
	})
}

func (h *Handler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, deleted)
}

func (h *Handler) DeleteAllSubmissions(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.DeleteAll(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, DeleteAllResponse{DeletedCount: count})
}

func (h *Handler) UpdateSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		h.logger.InfoContext(ctx, "invalid submission input", "error", validationErr.Message)
		httputil.RespondWithError(w, http.StatusBadRequest, validationErr.Message)
		return
	}
	if errors.Is(err, ErrSubmissionNotFound) {
		h.logger.InfoContext(ctx, "submission not found")
		httputil.RespondWithError(w, http.StatusNotFound, "submission not found")
		return
	}
	h.logger.ErrorContext(ctx, "submission store error", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error, please try again later")
}
