package repository

import (
	"context"
	"time"

	"cloverpass/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IReconciliationRepository defines the repair queue for partial
// account/profile writes.
type IReconciliationRepository interface {
	Enqueue(ctx context.Context, task *model.ReconciliationTask) error
	ListPending(ctx context.Context, limit int64) ([]*model.ReconciliationTask, error)
	MarkDone(ctx context.Context, id primitive.ObjectID) error
	MarkAttempt(ctx context.Context, id primitive.ObjectID, attemptErr string, failed bool) error
}

// ReconciliationRepository implements the repair queue over mongo
type ReconciliationRepository struct {
	collection *mongo.Collection
}

func NewReconciliationRepository(db *mongo.Database) IReconciliationRepository {
	return &ReconciliationRepository{collection: db.Collection("reconciliations")}
}

func (r *ReconciliationRepository) Enqueue(ctx context.Context, task *model.ReconciliationTask) error {
	now := time.Now()
	task.Status = model.ReconcileStatusPending
	task.CreatedAt = now
	task.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, task)
	return err
}

func (r *ReconciliationRepository) ListPending(ctx context.Context, limit int64) ([]*model.ReconciliationTask, error) {
	cur, err := r.collection.Find(ctx,
		bson.M{"status": model.ReconcileStatusPending},
		options.Find().SetLimit(limit).SetSort(bson.M{"createdAt": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []*model.ReconciliationTask{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *ReconciliationRepository) MarkDone(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": model.ReconcileStatusDone, "updatedAt": time.Now()}},
	)
	return err
}

// MarkAttempt records a failed attempt; failed=true parks the task so it is
// no longer picked up.
func (r *ReconciliationRepository) MarkAttempt(ctx context.Context, id primitive.ObjectID, attemptErr string, failed bool) error {
	set := bson.M{"lastError": attemptErr, "updatedAt": time.Now()}
	if failed {
		set["status"] = model.ReconcileStatusFailed
	}
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set, "$inc": bson.M{"attempts": 1}},
	)
	return err
}
