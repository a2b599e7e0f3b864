// Package mongo provides the MongoDB implementation of the audit trail store.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lucas0204/Fin-API/internal/domain/audit"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditCollectionName is the name of the audit trail collection
const AuditCollectionName = "operation_records"

// AuditRepository implements the audit.Repository interface for MongoDB
type AuditRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewAuditRepository creates a new MongoDB audit repository
func NewAuditRepository(logger *slog.Logger, db *mongo.Database) audit.Repository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Record stores one operation audit document
func (r *AuditRepository) Record(ctx context.Context, record *audit.OperationRecord) error {
	collection := r.db.Collection(AuditCollectionName)

	if _, err := collection.InsertOne(ctx, record); err != nil {
		r.logger.Error("Failed to insert audit record",
			"account_id", record.AccountID.String(),
			"kind", string(record.Kind),
			"error", err,
		)
		return fmt.Errorf("failed to insert audit record: %w", err)
	}

	return nil
}

// ListByAccountID retrieves paginated audit records for an account,
// newest first.
func (r *AuditRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*audit.OperationRecord, error) {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{"account_id": accountID}
	opts := options.Find().
		SetSort(bson.M{"recorded_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list audit records", "account_id", accountID.String(), "error", err)
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*audit.OperationRecord
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode audit records", "account_id", accountID.String(), "error", err)
		return nil, fmt.Errorf("failed to decode audit records: %w", err)
	}

	return records, nil
}
