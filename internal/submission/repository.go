package submission

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
	Create(ctx context.Context, submission *Submission) (*Submission, error)
	List(ctx context.Context) ([]Submission, error)
	Delete(ctx context.Context, id string) (*Submission, error)
	DeleteAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) (*Submission, error)
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

func (r *repository) Create(ctx context.Context, submission *Submission) (*Submission, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(submission).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "submissions", time.Since(start), err)

	if err != nil {
		return nil, unavailable(err)
	}
	return submission, nil
}

func (r *repository) List(ctx context.Context) ([]Submission, error) {
	start := time.Now()
	submissions := make([]Submission, 0)
	err := r.db.NewSelect().
		Model(&submissions).
		OrderExpr("created_at DESC").
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "submissions", time.Since(start), err)

	if err != nil {
		return nil, unavailable(err)
	}
	return submissions, nil
}

func (r *repository) Delete(ctx context.Context, id string) (*Submission, error) {
	start := time.Now()
	submission := new(Submission)
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(submission).Where("id = ?", id).For("UPDATE").Scan(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*Submission)(nil)).Where("id = ?", id).Exec(ctx)
		return err
	})

	r.metrics.Database.RecordQuery(ctx, "delete", "submissions", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, unavailable(err)
	}
	return submission, nil
}

func (r *repository) DeleteAll(ctx context.Context) (int64, error) {
	start := time.Now()
	result, err := r.db.NewDelete().Model((*Submission)(nil)).Where("TRUE").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "submissions", time.Since(start), err)

	if err != nil {
		return 0, unavailable(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, unavailable(err)
	}
	return rowsAffected, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) (*Submission, error) {
	start := time.Now()
	submission := new(Submission)
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*Submission)(nil)).
			Set("status = ?", status).
			Set("updated_at = ?", updatedAt).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return sql.ErrNoRows
		}
		return tx.NewSelect().Model(submission).Where("id = ?", id).Scan(ctx)
	})

	r.metrics.Database.RecordQuery(ctx, "update", "submissions", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, unavailable(err)
	}
	return submission, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
