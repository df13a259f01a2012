package repository

import (
	"context"

	"cloverpass/internal/model"
	"cloverpass/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// The simple entity collections share the generic CRUD repository; only the
// collection name differs.

func NewEventRepository(db *mongo.Database) generic.BaseRepository[*model.Event] {
	return generic.NewBaseRepository[*model.Event](db.Collection("events"))
}

func NewTicketRepository(db *mongo.Database) generic.BaseRepository[*model.Ticket] {
	return generic.NewBaseRepository[*model.Ticket](db.Collection("tickets"))
}

func NewBoxRepository(db *mongo.Database) generic.BaseRepository[*model.Box] {
	return generic.NewBaseRepository[*model.Box](db.Collection("boxes"))
}

func NewPromoterRepository(db *mongo.Database) generic.BaseRepository[*model.Promoter] {
	return generic.NewBaseRepository[*model.Promoter](db.Collection("promoters"))
}

// IMemberRepository adds the dashboard count to the generic member CRUD.
type IMemberRepository interface {
	generic.BaseRepository[*model.Member]
	Count(ctx context.Context) (int64, error)
}

// MemberRepository implements member persistence
type MemberRepository struct {
	*generic.MongoBaseRepository[*model.Member]
}

func NewMemberRepository(db *mongo.Database) IMemberRepository {
	return &MemberRepository{
		MongoBaseRepository: generic.NewBaseRepository[*model.Member](db.Collection("members")),
	}
}

func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{})
}
