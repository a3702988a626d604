package mongo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/robertarktes/ticket-booking-and-payments/internal/eventbus"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditLogger appends every event seen on the bus to the audit_logs
// collection.
type AuditLogger struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewAuditLogger(db *mongo.Database, logger observability.Logger) *AuditLogger {
	return &AuditLogger{
		coll:   db.Collection("audit_logs"),
		logger: logger,
	}
}

type AuditLog struct {
	ID          string    `bson:"_id"`
	Source      string    `bson:"source"`
	DetailType  string    `bson:"detail_type"`
	AggregateID string    `bson:"aggregate_id"`
	OccurredAt  time.Time `bson:"occurred_at"`
	ReceivedAt  time.Time `bson:"received_at"`
	Detail      bson.M    `bson:"detail"`
}

func (a *AuditLogger) EnsureIndexes(ctx context.Context) error {
	_, err := a.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "aggregate_id", Value: 1}, {Key: "occurred_at", Value: 1}},
	})
	return err
}

func (a *AuditLogger) LogEvent(ctx context.Context, env eventbus.Envelope) error {
	var detail map[string]interface{}
	if err := json.Unmarshal(env.Detail, &detail); err != nil {
		return err
	}
	log := AuditLog{
		ID:          uuid.NewString(),
		Source:      env.Source,
		DetailType:  env.DetailType,
		AggregateID: env.AggregateID,
		OccurredAt:  env.Time,
		ReceivedAt:  time.Now().UTC(),
		Detail:      bson.M(detail),
	}
	_, err := a.coll.InsertOne(ctx, log)
	if err != nil {
		a.logger.WithError(err).Error("failed to insert audit log")
		return err
	}
	return nil
}

// History returns the audit trail of one aggregate, oldest first.
func (a *AuditLogger) History(ctx context.Context, aggregateID string) ([]AuditLog, error) {
	cur, err := a.coll.Find(ctx, bson.M{"aggregate_id": aggregateID}, options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var logs []AuditLog
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
