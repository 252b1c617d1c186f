package triage_test

import (
	"context"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/anikett35/MediMage/internal/appointment"
	"github.com/anikett35/MediMage/internal/logger"
	"github.com/anikett35/MediMage/internal/metrics"
	"github.com/anikett35/MediMage/internal/submission"
	"github.com/anikett35/MediMage/internal/triage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSubmissions is a minimal in-memory submission.Repository.
type memSubmissions struct {
	mu    sync.Mutex
	items []submission.Submission
}

func (m *memSubmissions) Create(ctx context.Context, s *submission.Submission) (*submission.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *s)
	return s, nil
}

func (m *memSubmissions) List(ctx context.Context) ([]submission.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]submission.Submission{}, m.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memSubmissions) Delete(ctx context.Context, id string) (*submission.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.items {
		if s.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return &s, nil
		}
	}
	return nil, submission.ErrSubmissionNotFound
}

func (m *memSubmissions) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.items))
	m.items = nil
	return n, nil
}

func (m *memSubmissions) UpdateStatus(ctx context.Context, id string, status submission.Status, updatedAt time.Time) (*submission.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Status = status
			m.items[i].UpdatedAt = updatedAt
			out := m.items[i]
			return &out, nil
		}
	}
	return nil, submission.ErrSubmissionNotFound
}

type memAppointments struct {
	mu    sync.Mutex
	items []appointment.Appointment
}

func (m *memAppointments) Create(ctx context.Context, a *appointment.Appointment) (*appointment.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *a)
	return a, nil
}

func (m *memAppointments) List(ctx context.Context) ([]appointment.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]appointment.Appointment{}, m.items...), nil
}

func (m *memAppointments) Delete(ctx context.Context, id string) (*appointment.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.items {
		if a.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return &a, nil
		}
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (m *memAppointments) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.items))
	m.items = nil
	return n, nil
}

func (m *memAppointments) UpdateStatus(ctx context.Context, id string, status appointment.Status, updatedAt time.Time) (*appointment.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Status = status
			m.items[i].UpdatedAt = updatedAt
			out := m.items[i]
			return &out, nil
		}
	}
	return nil, appointment.ErrAppointmentNotFound
}

type apiFixture struct {
	server       *httptest.Server
	client       *triage.Client
	submissions  submission.Service
	appointments appointment.Service
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	log := logger.Discard()

	tick := t0
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Second)
		return tick
	}

	submissions := submission.NewService(&memSubmissions{}, nil, log, metrics.NewMock(), submission.WithClock(clock))
	appointments := appointment.NewService(&memAppointments{}, log, metrics.NewMock())

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		submission.NewHandler(submissions, log).RegisterRoutes(r)
		appointment.NewHandler(appointments, log).RegisterRoutes(r)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &apiFixture{
		server:       server,
		client:       triage.NewClient(server.URL+"/api", server.Client()),
		submissions:  submissions,
		appointments: appointments,
	}
}

func TestEndToEnd_StatusUpdateAndStats(t *testing.T) {
	ctx := context.Background()
	fx := newAPIFixture(t)

	a, err := fx.submissions.Create(ctx, submission.CreateRequest{
		Name: "Asha", Email: "asha@example.com", Subject: "Chest pain follow-up",
		Message: "Need an earlier slot", Priority: "high",
	})
	require.NoError(t, err)
	b, err := fx.submissions.Create(ctx, submission.CreateRequest{
		Name: "Ravi", Email: "ravi@example.com", Subject: "Invoice copy",
		Message: "Please resend my invoice", Priority: "low",
	})
	require.NoError(t, err)

	console := triage.NewConsole(fx.client, logger.Discard())
	require.NoError(t, console.Refresh(ctx))

	require.NoError(t, console.UpdateSubmissionStatus(ctx, a.ID, "in-progress"))

	view := console.View()
	require.Len(t, view.Submissions, 2)
	byID := map[string]submission.Submission{}
	for _, s := range view.Submissions {
		byID[s.ID] = s
	}
	assert.Equal(t, submission.StatusInProgress, byID[a.ID].Status)
	assert.Equal(t, submission.StatusNew, byID[b.ID].Status)
	assert.Equal(t, 1, view.SubmissionStats.New)
	assert.Equal(t, 1, view.SubmissionStats.High)

	t.Run("SearchSubject", func(t *testing.T) {
		console.SetFilter(triage.Filter{Search: "chest pain", Status: triage.All, Priority: triage.All})
		view := console.View()
		require.Len(t, view.Submissions, 1)
		assert.Equal(t, a.ID, view.Submissions[0].ID)
		assert.Equal(t, 1, view.Shown)
		assert.Equal(t, 2, view.Total)
	})

	t.Run("InvalidStatusSurfacesAPIError", func(t *testing.T) {
		err := console.UpdateSubmissionStatus(ctx, a.ID, "replied")
		var apiErr *triage.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Equal(t, "status must be one of [new, in-progress, resolved]", apiErr.Message)
	})

	t.Run("DeleteAndDeleteAll", func(t *testing.T) {
		require.NoError(t, console.DeleteSubmission(ctx, b.ID))
		assert.Equal(t, 1, console.View().SubmissionStats.Total)

		err := console.DeleteSubmission(ctx, b.ID)
		var apiErr *triage.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)

		count, err := console.DeleteAllSubmissions(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Zero(t, console.View().SubmissionStats.Total)
	})
}

func TestEndToEnd_Appointments(t *testing.T) {
	ctx := context.Background()
	fx := newAPIFixture(t)

	upcoming := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)
	past := time.Now().Add(-72 * time.Hour).UTC().Format(time.RFC3339)

	apt, err := fx.appointments.Create(ctx, appointment.CreateRequest{
		PatientName: "Meera", PatientEmail: "meera@example.com", DoctorName: "Dr. Emily Williams",
		Department: "Pediatrics", Date: upcoming, Priority: "high",
	})
	require.NoError(t, err)
	_, err = fx.appointments.Create(ctx, appointment.CreateRequest{
		PatientName: "Kiran", PatientEmail: "kiran@example.com", DoctorName: "Dr. James Wilson",
		Department: "Orthopedics", Date: past,
	})
	require.NoError(t, err)

	console := triage.NewConsole(fx.client, logger.Discard())
	require.NoError(t, console.SetTab(triage.TabAppointments))
	require.NoError(t, console.Load(ctx, triage.TabAppointments))

	require.NoError(t, console.UpdateAppointmentStatus(ctx, apt.ID, "completed"))

	view := console.View()
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, triage.AppointmentStats{Total: 2, Upcoming: 1, High: 1, Completed: 1}, view.AppointmentStats)
	assert.Equal(t, apt.ID, view.Appointments[0].ID, "newest date first")

	require.NoError(t, console.DeleteAppointment(ctx, apt.ID))
	count, err := console.DeleteAllAppointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Zero(t, console.View().Total)
}
