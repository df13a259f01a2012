package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reconciliation actions for a partially provisioned identity: either finish
// writing the profile, or remove the orphaned account.
const (
	ReconcileCompleteProfile = "complete_profile"
	ReconcileDeleteAccount   = "delete_account"
)

// Reconciliation task states
const (
	ReconcileStatusPending = "pending"
	ReconcileStatusDone    = "done"
	ReconcileStatusFailed  = "failed"
)

// ReconciliationTask records an inconsistency left by a non-transactional
// account-then-profile write so a background worker can repair it.
type ReconciliationTask struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID       string             `bson:"uid" json:"uid"`
	Email     string             `bson:"email" json:"email"`
	Action    string             `bson:"action" json:"action"`
	Profile   *Profile           `bson:"profile,omitempty" json:"profile,omitempty"`
	Status    string             `bson:"status" json:"status"`
	Attempts  int                `bson:"attempts" json:"attempts"`
	LastError string             `bson:"lastError,omitempty" json:"lastError,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
