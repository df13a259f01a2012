package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Business is a tenant. Profiles may reference one; no referential integrity
// is enforced, a profile pointing at a deleted business is tolerated.
type Business struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Active      bool               `bson:"active" json:"active"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
