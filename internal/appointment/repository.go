package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anikett35/MediMage/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, appointment *Appointment) (*Appointment, error)
	List(ctx context.Context) ([]Appointment, error)
	Delete(ctx context.Context, id string) (*Appointment, error)
	DeleteAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) (*Appointment, error)
}

type repository struct {
	db      *bun.DB
	metrics *metrics.Metrics
}

func NewRepository(db *bun.DB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

func (r *repository) Create(ctx context.Context, appointment *Appointment) (*Appointment, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(appointment).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "appointments", time.Since(start), err)

	if err != nil {
		return nil, unavailable(err)
	}
	return appointment, nil
}

// List orders by appointment date, latest first; created_at breaks ties.
func (r *repository) List(ctx context.Context) ([]Appointment, error) {
	start := time.Now()
	appointments := make([]Appointment, 0)
	err := r.db.NewSelect().
		Model(&appointments).
		OrderExpr("date DESC, created_at DESC").
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "appointments", time.Since(start), err)

	if err != nil {
		return nil, unavailable(err)
	}
	return appointments, nil
}

func (r *repository) Delete(ctx context.Context, id string) (*Appointment, error) {
	start := time.Now()
	appointment := new(Appointment)
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(appointment).Where("id = ?", id).For("UPDATE").Scan(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*Appointment)(nil)).Where("id = ?", id).Exec(ctx)
		return err
	})

	r.metrics.Database.RecordQuery(ctx, "delete", "appointments", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, unavailable(err)
	}
	return appointment, nil
}

func (r *repository) DeleteAll(ctx context.Context) (int64, error) {
	start := time.Now()
	result, err := r.db.NewDelete().Model((*Appointment)(nil)).Where("TRUE").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "appointments", time.Since(start), err)

	if err != nil {
		return 0, unavailable(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, unavailable(err)
	}
	return rowsAffected, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) (*Appointment, error) {
	start := time.Now()
	appointment := new(Appointment)
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*Appointment)(nil)).
			Set("status = ?", status).
			Set("updated_at = ?", updatedAt).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, err := result.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return sql.ErrNoRows
		}
		return tx.NewSelect().Model(appointment).Where("id = ?", id).Scan(ctx)
	})

	r.metrics.Database.RecordQuery(ctx, "update", "appointments", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, unavailable(err)
	}
	return appointment, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
