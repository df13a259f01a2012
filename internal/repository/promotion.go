package repository

import (
	"context"
	"errors"
	"time"

	"cloverpass/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrCodeNotRedeemable is returned when a code does not exist on the
// promotion or was already redeemed.
var ErrCodeNotRedeemable = errors.New("code not found or already redeemed")

// IPromotionRepository defines promotion persistence
type IPromotionRepository interface {
	Create(ctx context.Context, p *model.Promotion) (*model.Promotion, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Promotion, error)
	ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*model.Promotion, error)
	Update(ctx context.Context, p *model.Promotion) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AppendCodes(ctx context.Context, id primitive.ObjectID, codes []model.PromotionCode) error
	RedeemCode(ctx context.Context, id primitive.ObjectID, code, redeemedBy string) (*model.Promotion, error)
	TotalGeneratedCodes(ctx context.Context) (int64, error)
}

// PromotionRepository implements promotion persistence
type PromotionRepository struct {
	collection *mongo.Collection
}

func NewPromotionRepository(db *mongo.Database) IPromotionRepository {
	return &PromotionRepository{collection: db.Collection("promotions")}
}

func (r *PromotionRepository) Create(ctx context.Context, p *model.Promotion) (*model.Promotion, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Codes == nil {
		p.Codes = []model.PromotionCode{}
	}
	res, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

func (r *PromotionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Promotion, error) {
	var p *model.Promotion
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PromotionRepository) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*model.Promotion, error) {
	cur, err := r.collection.Find(ctx, bson.M{"businessId": businessID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	promotions := []*model.Promotion{}
	if err := cur.All(ctx, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (r *PromotionRepository) Update(ctx context.Context, p *model.Promotion) error {
	p.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *PromotionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *PromotionRepository) AppendCodes(ctx context.Context, id primitive.ObjectID, codes []model.PromotionCode) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"generatedCodes": bson.M{"$each": codes}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RedeemCode flips a single code from unused to used in one conditional
// update, so two concurrent scans of the same code cannot both succeed.
func (r *PromotionRepository) RedeemCode(ctx context.Context, id primitive.ObjectID, code, redeemedBy string) (*model.Promotion, error) {
	now := time.Now()
	filter := bson.M{
		"_id": id,
		"generatedCodes": bson.M{
			"$elemMatch": bson.M{"code": code, "status": model.CodeStatusUnused},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"generatedCodes.$.status":     model.CodeStatusUsed,
			"generatedCodes.$.redeemedAt": now,
			"generatedCodes.$.redeemedBy": redeemedBy,
			"updatedAt":                   now,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p *model.Promotion
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCodeNotRedeemable
		}
		return nil, err
	}
	return p, nil
}

// TotalGeneratedCodes reduces the size of every promotion's code array.
func (r *PromotionRepository) TotalGeneratedCodes(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"n": bson.M{"$size": bson.M{"$ifNull": bson.A{"$generatedCodes", bson.A{}}}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$n"},
		}}},
	}
	cur, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
