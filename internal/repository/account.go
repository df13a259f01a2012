package repository

import (
	"context"
	"errors"
	"time"

	"cloverpass/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateEmail is returned when an account with the same email already
// exists. The unique index on email is the real enforcement; any pre-check
// is advisory only.
var ErrDuplicateEmail = errors.New("account email already exists")

// IAccountRepository defines identity account persistence
type IAccountRepository interface {
	Create(ctx context.Context, acc *model.Account) (*model.Account, error)
	FindByUID(ctx context.Context, uid string) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	Delete(ctx context.Context, uid string) error
	EnsureIndexes(ctx context.Context) error
}

// AccountRepository implements account persistence
type AccountRepository struct {
	collection *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) IAccountRepository {
	return &AccountRepository{collection: db.Collection("accounts")}
}

func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *AccountRepository) Create(ctx context.Context, acc *model.Account) (*model.Account, error) {
	now := time.Now()
	acc.CreatedAt = now
	acc.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, acc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return acc, nil
}

func (r *AccountRepository) FindByUID(ctx context.Context, uid string) (*model.Account, error) {
	var acc *model.Account
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&acc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return acc, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var acc *model.Account
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&acc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return acc, nil
}

func (r *AccountRepository) Delete(ctx context.Context, uid string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": uid})
	return err
}
