// Package audit (internal/audit) runs the asynchronous audit recorder: it
// takes operation records off the request path and writes them to the audit
// store on a bounded worker pool.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/Lucas0204/Fin-API/internal/domain/audit"
	"github.com/panjf2000/ants/v2"
)

const recordTimeout = 5 * time.Second

// PoolConfig sizes the recorder's worker pool
type PoolConfig struct {
	Size int
}

// Recorder writes audit records through a worker pool. Record never blocks
// the caller and never surfaces errors; the audit trail is best-effort and
// non-authoritative.
type Recorder struct {
	repo   audit.Repository
	pool   *ants.Pool
	logger *slog.Logger
}

// NewRecorder creates a recorder backed by a fixed-size worker pool
func NewRecorder(logger *slog.Logger, repo audit.Repository, config PoolConfig) (*Recorder, error) {
	pool, err := ants.NewPool(config.Size, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	return &Recorder{
		repo:   repo,
		pool:   pool,
		logger: logger,
	}, nil
}

// Record submits the record for asynchronous persistence. When the pool is
// saturated the record is dropped with a warning rather than blocking an
// operation on the audit trail.
func (r *Recorder) Record(record *audit.OperationRecord) {
	err := r.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := r.repo.Record(ctx, record); err != nil {
			r.logger.Error("Failed to persist audit record",
				"account_id", record.AccountID.String(),
				"kind", string(record.Kind),
				"error", err,
			)
		}
	})
	if err != nil {
		r.logger.Warn("Audit record dropped",
			"account_id", record.AccountID.String(),
			"kind", string(record.Kind),
			"error", err,
		)
	}
}

// Shutdown releases the worker pool
func (r *Recorder) Shutdown() {
	r.logger.Info("Shutting down audit recorder", "running_workers", r.pool.Running())
	r.pool.Release()
}

// Running returns the number of in-flight audit writes
func (r *Recorder) Running() int {
	return r.pool.Running()
}
