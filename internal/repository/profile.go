package repository

import (
	"context"
	"time"

	"cloverpass/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IProfileRepository defines profile persistence
type IProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) (*model.Profile, error)
	FindByUID(ctx context.Context, uid string) (*model.Profile, error)
	UpdateLastLogin(ctx context.Context, uid string, at time.Time) error
	Delete(ctx context.Context, uid string) error
	Count(ctx context.Context) (int64, error)
}

// ProfileRepository implements profile persistence
type ProfileRepository struct {
	collection *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) IProfileRepository {
	return &ProfileRepository{collection: db.Collection("profiles")}
}

func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Roles == nil {
		p.Roles = model.RoleList{}
	}
	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByUID returns (nil, nil) when no profile exists; callers distinguish
// that from a read error.
func (r *ProfileRepository) FindByUID(ctx context.Context, uid string) (*model.Profile, error) {
	var p *model.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) UpdateLastLogin(ctx context.Context, uid string, at time.Time) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"lastLogin": at, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, uid string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": uid})
	return err
}

func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
