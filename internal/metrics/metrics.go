package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	Database  *DatabaseMetrics
	Messaging *MessagingMetrics
	Health    *HealthMetrics

	submissionsCreated    metric.Int64Counter
	submissionsDeleted    metric.Int64Counter
	submissionStatusSet   metric.Int64Counter
	submissionsListViewed metric.Int64Counter
	appointmentsCreated   metric.Int64Counter
	appointmentsDeleted   metric.Int64Counter
	appointmentStatusSet  metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.Database, err = NewDatabaseMetrics(meter)
	if err != nil {
		return nil, err
	}

	m.Messaging, err = NewMessagingMetrics(meter)
	if err != nil {
		return nil, err
	}

	m.Health, err = NewHealthMetrics(meter)
	if err != nil {
		return nil, err
	}

	m.submissionsCreated, err = meter.Int64Counter(
		"clinic.submissions.created",
		metric.WithDescription("Total number of contact submissions created"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	m.submissionsDeleted, err = meter.Int64Counter(
		"clinic.submissions.deleted",
		metric.WithDescription("Total number of contact submissions deleted"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	m.submissionStatusSet, err = meter.Int64Counter(
		"clinic.submissions.status_updated",
		metric.WithDescription("Total number of submission status updates"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	m.submissionsListViewed, err = meter.Int64Counter(
		"clinic.submissions.list_viewed",
		metric.WithDescription("Total number of times the submission list was fetched"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.appointmentsCreated, err = meter.Int64Counter(
		"clinic.appointments.created",
		metric.WithDescription("Total number of appointments created"),
		metric.WithUnit("{appointment}"),
	)
	if err != nil {
		return nil, err
	}

	m.appointmentsDeleted, err = meter.Int64Counter(
		"clinic.appointments.deleted",
		metric.WithDescription("Total number of appointments deleted"),
		metric.WithUnit("{appointment}"),
	)
	if err != nil {
		return nil, err
	}

	m.appointmentStatusSet, err = meter.Int64Counter(
		"clinic.appointments.status_updated",
		metric.WithDescription("Total number of appointment status updates"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordSubmissionCreated(ctx context.Context, priority, department string) {
	if m != nil && m.submissionsCreated != nil {
		m.submissionsCreated.Add(ctx, 1, metric.WithAttributes(
			attribute.String("priority", priority),
			attribute.String("department", department),
		))
	}
}

func (m *Metrics) RecordSubmissionsDeleted(ctx context.Context, n int64) {
	if m != nil && m.submissionsDeleted != nil && n > 0 {
		m.submissionsDeleted.Add(ctx, n)
	}
}

func (m *Metrics) RecordSubmissionStatusUpdated(ctx context.Context, status string) {
	if m != nil && m.submissionStatusSet != nil {
		m.submissionStatusSet.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

func (m *Metrics) RecordSubmissionsListViewed(ctx context.Context) {
	if m != nil && m.submissionsListViewed != nil {
		m.submissionsListViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordAppointmentCreated(ctx context.Context) {
	if m != nil && m.appointmentsCreated != nil {
		m.appointmentsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordAppointmentsDeleted(ctx context.Context, n int64) {
	if m != nil && m.appointmentsDeleted != nil && n > 0 {
		m.appointmentsDeleted.Add(ctx, n)
	}
}

func (m *Metrics) RecordAppointmentStatusUpdated(ctx context.Context, status string) {
	if m != nil && m.appointmentStatusSet != nil {
		m.appointmentStatusSet.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{
		Database:  &DatabaseMetrics{},
		Messaging: &MessagingMetrics{},
		Health:    &HealthMetrics{},
	}
}
