package appointment

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
	router.Route("/appointments", func(r chi.Router) {
		r.Post("/", h.CreateAppointment)
		r.Get("/", h.ListAppointments)
		r.Delete("/", h.DeleteAllAppointments)
		r.Delete("/{id}", h.DeleteAppointment)
		r.Put("/{id}/status", h.UpdateAppointmentStatus)
	})
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
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

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, ListResponse{
		Total: len(appointments),
		Items: appointments,
	})
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, deleted)
}

func (h *Handler) DeleteAllAppointments(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.DeleteAll(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, DeleteAllResponse{DeletedCount: count})
}

func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
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
	switch {
	case errors.As(err, &validationErr):
		h.logger.InfoContext(ctx, "invalid appointment input", "error", validationErr.Message)
		httputil.RespondWithError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, ErrAppointmentNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "appointment not found")
	default:
		h.logger.ErrorContext(ctx, "appointment store error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error, please try again later")
	}
}
