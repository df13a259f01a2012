package repository

import (
	"context"
	"time"

	"cloverpass/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IBusinessRepository defines tenant persistence
type IBusinessRepository interface {
	Create(ctx context.Context, b *model.Business) (*model.Business, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Business, error)
	List(ctx context.Context) ([]*model.Business, error)
	Update(ctx context.Context, b *model.Business) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// BusinessRepository implements tenant persistence
type BusinessRepository struct {
	collection *mongo.Collection
}

func NewBusinessRepository(db *mongo.Database) IBusinessRepository {
	return &BusinessRepository{collection: db.Collection("businesses")}
}

func (r *BusinessRepository) Create(ctx context.Context, b *model.Business) (*model.Business, error) {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, b)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return b, nil
}

func (r *BusinessRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Business, error) {
	var b *model.Business
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (r *BusinessRepository) List(ctx context.Context) ([]*model.Business, error) {
	cur, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	businesses := []*model.Business{}
	if err := cur.All(ctx, &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *BusinessRepository) Update(ctx context.Context, b *model.Business) error {
	b.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *BusinessRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *BusinessRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
