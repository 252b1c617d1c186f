package booking

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anikett35/MediMage/internal/httputil"
	"github.com/anikett35/MediMage/internal/identity"

	"github.com/go-chi/chi/v5"
)

type OptionsResponse struct {
	TimeSlots []string `json:"timeSlots"`
	Reasons   []string `json:"reasons"`
}

// ActionRequest carries the client's state and the next event. The signed-in user
// always comes from the request's identity, never from the posted state.
type ActionRequest struct {
	State  State  `json:"state"`
	Action Action `json:"action"`
}

type ActionResponse struct {
	State State `json:"state"`
}

type Handler struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		now:    time.Now,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/doctors", h.ListDoctors)
	router.Route("/booking", func(r chi.Router) {
		r.Get("/options", h.GetOptions)
		r.Post("/actions", h.ApplyAction)
	})
}

func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, Doctors)
}

func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, OptionsResponse{
		TimeSlots: TimeSlots,
		Reasons:   Reasons,
	})
}

func (h *Handler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Action.Type == ActionAuthChanged {
		httputil.RespondWithError(w, http.StatusBadRequest, "sign-in state is managed by the identity provider")
		return
	}
	if req.Action.At.IsZero() {
		req.Action.At = h.now()
	}
	if req.State.PaymentMethod == "" {
		req.State.PaymentMethod = PaymentCard
	}
	if req.State.Bookings == nil {
		req.State.Bookings = []Booking{}
	}

	state, err := Reduce(req.State, AuthChanged(identity.UserFromContext(r.Context())))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to apply identity", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error, please try again later")
		return
	}

	state, err = Reduce(state, req.Action)
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, ActionResponse{State: state})
}
