package appointment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/anikett35/MediMage/internal/metrics"
	"github.com/anikett35/MediMage/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const dayLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Appointment, error)
	List(ctx context.Context) ([]Appointment, error)
	Delete(ctx context.Context, id string) (*Appointment, error)
	DeleteAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Appointment, error)
}

type service struct {
	repo     Repository
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func NewService(repo Repository, logger *slog.Logger, m *metrics.Metrics, opts ...Option) Service {
	s := &service{
		repo:     repo,
		validate: validation.New(),
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	req = normalize(req)
	if err := s.validate.Struct(&req); err != nil {
		return nil, &ValidationError{Message: validation.Message(err)}
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, &ValidationError{Message: "date must be RFC 3339 or YYYY-MM-DD"}
	}

	now := s.now().UTC().Truncate(time.Microsecond)

	appointment := &Appointment{
		ID:           uuid.NewString(),
		PatientName:  req.PatientName,
		PatientEmail: req.PatientEmail,
		PatientPhone: req.PatientPhone,
		DoctorName:   req.DoctorName,
		Department:   req.Department,
		Date:         date,
		Priority:     Priority(req.Priority),
		Status:       StatusScheduled,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if appointment.Priority == "" {
		appointment.Priority = PriorityMedium
	}

	created, err := s.repo.Create(ctx, appointment)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store appointment", "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "appointment created",
		"id", created.ID,
		"doctor", created.DoctorName,
		"date", created.Date,
	)
	s.metrics.RecordAppointmentCreated(ctx)
	return created, nil
}

func (s *service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id string) (*Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAppointmentNotFound
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "appointment deleted", "id", id)
	s.metrics.RecordAppointmentsDeleted(ctx, 1)
	return deleted, nil
}

func (s *service) DeleteAll(ctx context.Context) (int64, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "all appointments deleted", "count", count)
	s.metrics.RecordAppointmentsDeleted(ctx, count)
	return count, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status string) (*Appointment, error) {
	newStatus := Status(strings.TrimSpace(status))
	if !newStatus.Valid() {
		return nil, &ValidationError{Message: "status must be one of [scheduled, completed, cancelled]"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAppointmentNotFound
	}

	updated, err := s.repo.UpdateStatus(ctx, id, newStatus, s.now().UTC().Truncate(time.Microsecond))
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "appointment status updated", "id", id, "status", newStatus)
	s.metrics.RecordAppointmentStatusUpdated(ctx, string(newStatus))
	return updated, nil
}

func normalize(req CreateRequest) CreateRequest {
	req.PatientName = strings.TrimSpace(req.PatientName)
	req.PatientEmail = strings.ToLower(strings.TrimSpace(req.PatientEmail))
	req.PatientPhone = strings.TrimSpace(req.PatientPhone)
	req.DoctorName = strings.TrimSpace(req.DoctorName)
	req.Department = strings.TrimSpace(req.Department)
	req.Date = strings.TrimSpace(req.Date)
	req.Priority = strings.ToLower(strings.TrimSpace(req.Priority))
	req.Notes = strings.TrimSpace(req.Notes)
	return req
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Truncate(time.Microsecond), nil
	}
	t, err := time.Parse(dayLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
