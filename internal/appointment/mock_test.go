package appointment_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anikett35/MediMage/internal/appointment"
)

type mockRepository struct {
	mu    sync.Mutex
	items []appointment.Appointment
	err   error
}

func (m *mockRepository) Create(ctx context.Context, a *appointment.Appointment) (*appointment.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.items = append(m.items, *a)
	out := *a
	return &out, nil
}

func (m *mockRepository) List(ctx context.Context) ([]appointment.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := append([]appointment.Appointment{}, m.items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) (*appointment.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i, a := range m.items {
		if a.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return &a, nil
		}
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (m *mockRepository) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	n := int64(len(m.items))
	m.items = nil
	return n, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, status appointment.Status, updatedAt time.Time) (*appointment.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
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
