package submission

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

// Producer interface for outbound events (NATS/Kafka/log)
type Producer interface {
	SendMessage(ctx context.Context, key string, value interface{}) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Submission, error)
	List(ctx context.Context) ([]Submission, error)
	Delete(ctx context.Context, id string) (*Submission, error)
	DeleteAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Submission, error)
}

type service struct {
	repo     Repository
	producer Producer
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*service)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService wires the store. producer may be nil, in which case no event is sent.
func NewService(repo Repository, producer Producer, logger *slog.Logger, m *metrics.Metrics, opts ...Option) Service {
	s := &service{
		repo:     repo,
		producer: producer,
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

func (s *service) Create(ctx context.Context, req CreateRequest) (*Submission, error) {
	req = normalize(req)
	if err := s.validate.Struct(&req); err != nil {
		return nil, &ValidationError{Message: validation.Message(err)}
	}

	// postgres keeps microseconds; truncating keeps the returned record equal to the stored one
	now := s.now().UTC().Truncate(time.Microsecond)

	submission := &Submission{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Subject:    req.Subject,
		Message:    req.Message,
		Priority:   Priority(req.Priority),
		Department: Department(req.Department),
		Status:     StatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if submission.Priority == "" {
		submission.Priority = PriorityMedium
	}
	if submission.Department == "" {
		submission.Department = DepartmentGeneral
	}

	created, err := s.repo.Create(ctx, submission)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store submission", "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "submission created",
		"id", created.ID,
		"department", created.Department,
		"priority", created.Priority,
	)
	s.metrics.RecordSubmissionCreated(ctx, string(created.Priority), string(created.Department))
	s.publishCreated(ctx, created)

	return created, nil
}

// publishCreated never fails the request; a lost event only costs a notification.
func (s *service) publishCreated(ctx context.Context, created *Submission) {
	if s.producer == nil {
		return
	}

	start := time.Now()
	err := s.producer.SendMessage(ctx, created.ID, newCreatedEvent(created))
	s.metrics.Messaging.RecordPublish(ctx, "submission.created", time.Since(start), err)

	if err != nil {
		s.logger.WarnContext(ctx, "failed to publish submission event", "id", created.ID, "error", err)
	}
}

func (s *service) List(ctx context.Context) ([]Submission, error) {
	submissions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSubmissionsListViewed(ctx)
	return submissions, nil
}

func (s *service) Delete(ctx context.Context, id string) (*Submission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSubmissionNotFound
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "submission deleted", "id", id)
	s.metrics.RecordSubmissionsDeleted(ctx, 1)
	return deleted, nil
}

func (s *service) DeleteAll(ctx context.Context) (int64, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "all submissions deleted", "count", count)
	s.metrics.RecordSubmissionsDeleted(ctx, count)
	return count, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status string) (*Submission, error) {
	newStatus := Status(strings.TrimSpace(status))
	if !newStatus.Valid() {
		return nil, &ValidationError{Message: "status must be one of [new, in-progress, resolved]"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSubmissionNotFound
	}

	updated, err := s.repo.UpdateStatus(ctx, id, newStatus, s.now().UTC().Truncate(time.Microsecond))
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "submission status updated", "id", id, "status", newStatus)
	s.metrics.RecordSubmissionStatusUpdated(ctx, string(newStatus))
	return updated, nil
}

func normalize(req CreateRequest) CreateRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Subject = strings.TrimSpace(req.Subject)
	// message keeps its formatting; whitespace-only still counts as empty
	if strings.TrimSpace(req.Message) == "" {
		req.Message = ""
	}
	req.Priority = strings.ToLower(strings.TrimSpace(req.Priority))
	req.Department = strings.ToLower(strings.TrimSpace(req.Department))
	return req
}
