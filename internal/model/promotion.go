package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Promotion statuses
const (
	PromotionStatusActive   = "active"
	PromotionStatusInactive = "inactive"
	PromotionStatusExpired  = "expired"
)

// PromotionStatuses lists the accepted status values.
var PromotionStatuses = []string{
	PromotionStatusActive,
	PromotionStatusInactive,
	PromotionStatusExpired,
}

// QR code states within a promotion
const (
	CodeStatusUnused = "unused"
	CodeStatusUsed   = "used"
)

// PromotionCode is a single redeemable QR code attached to a promotion.
type PromotionCode struct {
	Code       string     `bson:"code" json:"code"`
	Status     string     `bson:"status" json:"status"`
	IssuedAt   time.Time  `bson:"issuedAt" json:"issuedAt"`
	RedeemedAt *time.Time `bson:"redeemedAt,omitempty" json:"redeemedAt,omitempty"`
	RedeemedBy string     `bson:"redeemedBy,omitempty" json:"redeemedBy,omitempty"`
}

// Promotion is a business's redeemable offer.
type Promotion struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusinessID  primitive.ObjectID `bson:"businessId" json:"businessId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Cost        float64            `bson:"cost" json:"cost"`
	Status      string             `bson:"status" json:"status"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	EndDate     time.Time          `bson:"endDate" json:"endDate"`
	Codes       []PromotionCode    `bson:"generatedCodes" json:"generatedCodes"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
