package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/clinicdesk/booking-api/pkg/errors"
	"github.com/clinicdesk/booking-api/pkg/metrics"
)

// Postgres error codes of interest.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// observe records one database operation. Metrics may be nil.
func (r *BaseRepository) observe(op string, start time.Time, err error) {
	if r.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.metrics.DatabaseOperations.WithLabelValues(op, status).Inc()
	r.metrics.DatabaseLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// WithTx executes a function within a transaction
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// translateErrorNoRows is used when an exec touched zero rows.
func translateErrorNoRows(resource string) error {
	return errors.NotFound(resource, nil)
}

// translateError maps driver errors onto the application taxonomy:
// missing rows become not-found, unique and FK violations become conflicts.
func translateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return errors.NotFound(resource, err)
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return errors.Conflict(resource+" already exists", err)
		case pgForeignKeyViolation:
			return errors.Conflict(resource+" is referenced by other rows", err)
		}
	}
	return err
}
