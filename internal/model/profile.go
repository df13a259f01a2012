package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the application-level record for an authenticated identity.
// It is keyed by the identity's uid, so identity and profile are 1:1.
type Profile struct {
	UID         string              `bson:"_id" json:"uid"`
	DisplayName string              `bson:"displayName" json:"displayName"`
	Email       string              `bson:"email" json:"email"`
	DNI         string              `bson:"dni,omitempty" json:"dni,omitempty"`
	Roles       RoleList            `bson:"roles" json:"roles"`
	BusinessID  *primitive.ObjectID `bson:"businessId,omitempty" json:"businessId,omitempty"`
	LastLogin   *time.Time          `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Normalize guarantees the invariant callers rely on: Roles is never nil,
// even when the stored document had no roles field at all.
func (p *Profile) Normalize() {
	if p.Roles == nil {
		p.Roles = RoleList{}
	}
}
