package model

import "time"

// Account is an identity record: the authenticated principal a session token
// is issued for. Accounts only carry credentials; everything role-related
// lives on the Profile keyed by the same uid.
type Account struct {
	UID          string    `bson:"_id" json:"uid"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Disabled     bool      `bson:"disabled" json:"disabled"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
