package app_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anikett35/MediMage/internal/app"
	"github.com/anikett35/MediMage/internal/appointment"
	"github.com/anikett35/MediMage/internal/booking"
	"github.com/anikett35/MediMage/internal/health"
	"github.com/anikett35/MediMage/internal/identity"
	"github.com/anikett35/MediMage/internal/logger"
	"github.com/anikett35/MediMage/internal/metrics"
	"github.com/anikett35/MediMage/internal/submission"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const origin = "http://localhost:5173"

func setupRouter(t *testing.T) (chi.Router, *identity.TokenVerifier) {
	t.Helper()

	log := logger.Discard()
	m := metrics.NewMock()
	verifier := identity.NewTokenVerifier("test-signing-key", "https://issuer.test")

	handlers := app.Handlers{
		Health:       health.NewHandler(nil, m.Health, log),
		Submissions:  submission.NewHandler(submission.NewService(nil, nil, log, m), log),
		Appointments: appointment.NewHandler(appointment.NewService(nil, log, m), log),
		Booking:      booking.NewHandler(log),
	}
	return app.NewRouter([]string{origin}, handlers, verifier, log), verifier
}

func TestRouter_Health(t *testing.T) {
	router, _ := setupRouter(t)

	for path, body := range map[string]string{
		"/health": `{"status":"ok"}`,
		"/ready":  `{"status":"ready"}`,
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, body, w.Body.String(), path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Doctors(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/doctors", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var doctors []booking.Doctor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doctors))
	assert.Len(t, doctors, len(booking.Doctors))
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/submissions", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_BookingUsesIdentity(t *testing.T) {
	router, verifier := setupRouter(t)

	openBooking := func(token string) booking.State {
		body, err := json.Marshal(booking.ActionRequest{
			State:  booking.NewState(),
			Action: booking.OpenBooking(booking.Doctors[0].ID, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/booking/actions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp booking.ActionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.State
	}

	t.Run("SignedOut", func(t *testing.T) {
		state := openBooking("")
		assert.Nil(t, state.User)
		assert.True(t, state.ShowSignInPrompt)
		assert.False(t, state.ShowBookingModal)
	})

	t.Run("SignedIn", func(t *testing.T) {
		token, err := verifier.Issue(identity.User{ID: "user_1", Name: "Asha Rao", Email: "asha@example.com"}, time.Hour)
		require.NoError(t, err)

		state := openBooking(token)
		require.NotNil(t, state.User)
		assert.Equal(t, "user_1", state.User.ID)
		assert.False(t, state.ShowSignInPrompt)
		assert.True(t, state.ShowBookingModal)
		assert.Equal(t, "2026-03-11", state.Date)
	})
}
