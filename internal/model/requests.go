package model

import "time"

// LoginRequest authenticates an account by email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6"`
}

// CreatePlatformUserRequest creates an account plus its profile.
// BusinessID is required unless the role set includes superadmin; that
// conditional check spans two fields and lives in the user service.
type CreatePlatformUserRequest struct {
	Name       string   `json:"name" binding:"required,min=2,max=100"`
	Email      string   `json:"email" binding:"required,email,max=254"`
	Password   string   `json:"password" binding:"required,min=6"`
	DNI        string   `json:"dni" binding:"omitempty,dni"`
	Roles      []string `json:"roles" binding:"required,min=1,dive,role"`
	BusinessID string   `json:"businessId" binding:"omitempty,objectid"`
}

// CreateStaffRequest is the business-panel variant of user creation. The
// target business is never taken from the payload; it is always the caller's.
type CreateStaffRequest struct {
	Name     string   `json:"name" binding:"required,min=2,max=100"`
	Email    string   `json:"email" binding:"required,email,max=254"`
	Password string   `json:"password" binding:"required,min=6"`
	DNI      string   `json:"dni" binding:"omitempty,dni"`
	Roles    []string `json:"roles" binding:"required,min=1,dive,role"`
}

// CreateBusinessRequest registers a new tenant.
type CreateBusinessRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	Address     string `json:"address" binding:"max=200"`
	Phone       string `json:"phone" binding:"max=30"`
}

// CreatePromotionRequest creates a promotion for a business.
type CreatePromotionRequest struct {
	BusinessID  string    `json:"businessId" binding:"omitempty,objectid"`
	Title       string    `json:"title" binding:"required,min=2,max=150"`
	Description string    `json:"description" binding:"max=500"`
	Cost        float64   `json:"cost" binding:"gte=0"`
	Status      string    `json:"status" binding:"required,oneof=active inactive expired"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	CodeCount   int       `json:"codeCount" binding:"gte=0,lte=1000"`
}

// CreateEventRequest creates an event for a business.
type CreateEventRequest struct {
	BusinessID string    `json:"businessId" binding:"omitempty,objectid"`
	Name       string    `json:"name" binding:"required,min=2,max=150"`
	Venue      string    `json:"venue" binding:"max=200"`
	Date       time.Time `json:"date" binding:"required"`
	Status     string    `json:"status" binding:"required,oneof=active inactive expired"`
}

// CreateTicketRequest creates a ticket type for an event.
type CreateTicketRequest struct {
	EventID string  `json:"eventId" binding:"required,objectid"`
	Name    string  `json:"name" binding:"required,min=2,max=150"`
	Cost    float64 `json:"cost" binding:"gte=0"`
	Status  string  `json:"status" binding:"required,oneof=active inactive expired"`
}

// CreateBoxRequest creates a box for an event.
type CreateBoxRequest struct {
	EventID  string  `json:"eventId" binding:"required,objectid"`
	Name     string  `json:"name" binding:"required,min=2,max=150"`
	Capacity int     `json:"capacity" binding:"gte=1,lte=200"`
	Cost     float64 `json:"cost" binding:"gte=0"`
	Status   string  `json:"status" binding:"required,oneof=active inactive expired"`
}

// CreatePromoterRequest attaches a promoter to a business.
type CreatePromoterRequest struct {
	BusinessID string `json:"businessId" binding:"omitempty,objectid"`
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"omitempty,email,max=254"`
	Phone      string `json:"phone" binding:"max=30"`
}

// RedeemCodeRequest redeems a promotion QR code.
type RedeemCodeRequest struct {
	PromotionID string `json:"promotionId" binding:"required,objectid"`
	Code        string `json:"code" binding:"required"`
}
