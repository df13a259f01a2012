package generic

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("entity not found")

// BaseRepository is the CRUD surface shared by the simple entity collections
// (events, tickets, boxes, promoters, members).
type BaseRepository[T Entity] interface {
	Create(ctx context.Context, entity T) error
	GetByID(ctx context.Context, id string) (T, error)
	List(ctx context.Context, filter bson.M) ([]T, error)
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, id string) error
}

// MongoBaseRepository implements BaseRepository over a mongo.Collection.
type MongoBaseRepository[T Entity] struct {
	Collection *mongo.Collection
}

func NewBaseRepository[T Entity](collection *mongo.Collection) *MongoBaseRepository[T] {
	return &MongoBaseRepository[T]{Collection: collection}
}

func (r *MongoBaseRepository[T]) Create(ctx context.Context, entity T) error {
	if entity.GetID().IsZero() {
		entity.SetID(primitive.NewObjectID())
	}
	_, err := r.Collection.InsertOne(ctx, entity)
	return err
}

func (r *MongoBaseRepository[T]) GetByID(ctx context.Context, id string) (T, error) {
	var entity T
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity, errors.New("invalid id")
	}

	err = r.Collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity, ErrNotFound
	}
	return entity, err
}

func (r *MongoBaseRepository[T]) List(ctx context.Context, filter bson.M) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entities := []T{}
	if err := cur.All(ctx, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

// Update replaces the whole document.
func (r *MongoBaseRepository[T]) Update(ctx context.Context, entity T) error {
	res, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": entity.GetID()}, entity)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBaseRepository[T]) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid id")
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
