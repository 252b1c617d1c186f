package appointment_test

import (
	"context"
	"testing"
	"time"

	"github.com/anikett35/MediMage/internal/appointment"
	"github.com/anikett35/MediMage/internal/logger"
	"github.com/anikett35/MediMage/internal/metrics"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func newTestService(repo appointment.Repository) appointment.Service {
	return appointment.NewService(repo, logger.Discard(), metrics.NewMock(),
		appointment.WithClock(func() time.Time { return now }))
}

func validRequest() appointment.CreateRequest {
	return appointment.CreateRequest{
		PatientName:  "Meera Nair",
		PatientEmail: "Meera@Example.com",
		DoctorName:   "Dr. Sarah Johnson",
		Department:   "Cardiology",
		Date:         "2025-06-10",
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults", func(t *testing.T) {
		svc := newTestService(&mockRepository{})

		created, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)

		_, err = uuid.Parse(created.ID)
		assert.NoError(t, err)
		assert.Equal(t, "meera@example.com", created.PatientEmail)
		assert.Equal(t, appointment.StatusScheduled, created.Status)
		assert.Equal(t, appointment.PriorityMedium, created.Priority)
		assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), created.Date)
		assert.Equal(t, now, created.CreatedAt)
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	})

	t.Run("RFC3339Date", func(t *testing.T) {
		svc := newTestService(&mockRepository{})

		req := validRequest()
		req.Date = "2025-06-10T14:30:00+05:30"
		created, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), created.Date)
	})

	t.Run("Invalid", func(t *testing.T) {
		cases := map[string]func(*appointment.CreateRequest){
			"MissingPatient": func(r *appointment.CreateRequest) { r.PatientName = " " },
			"BadEmail":       func(r *appointment.CreateRequest) { r.PatientEmail = "meera" },
			"MissingDoctor":  func(r *appointment.CreateRequest) { r.DoctorName = "" },
			"BadDate":        func(r *appointment.CreateRequest) { r.Date = "next tuesday" },
			"BadPriority":    func(r *appointment.CreateRequest) { r.Priority = "p1" },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				repo := &mockRepository{}
				svc := newTestService(repo)

				req := validRequest()
				mutate(&req)
				_, err := svc.Create(ctx, req)
				assert.ErrorIs(t, err, appointment.ErrInvalidInput)
				assert.Empty(t, repo.items)
			})
		}
	})
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mockRepository{})

	a, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	req := validRequest()
	req.Date = "2025-07-01"
	b, err := svc.Create(ctx, req)
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, b.ID, items[0].ID, "latest date first")

	updated, err := svc.UpdateStatus(ctx, a.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(ctx, a.ID, "no-show")
	assert.ErrorIs(t, err, appointment.ErrInvalidInput)

	_, err = svc.UpdateStatus(ctx, "bogus", "completed")
	assert.ErrorIs(t, err, appointment.ErrAppointmentNotFound)

	deleted, err := svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, deleted.ID)

	_, err = svc.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, appointment.ErrAppointmentNotFound)

	count, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
