package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a dated happening hosted by a business.
type Event struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusinessID primitive.ObjectID `bson:"businessId" json:"businessId"`
	Name       string             `bson:"name" json:"name"`
	Venue      string             `bson:"venue,omitempty" json:"venue,omitempty"`
	Date       time.Time          `bson:"date" json:"date"`
	Status     string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (e *Event) GetID() primitive.ObjectID   { return e.ID }
func (e *Event) SetID(id primitive.ObjectID) { e.ID = id }

// Ticket is an entry pass for an event.
type Ticket struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusinessID primitive.ObjectID `bson:"businessId" json:"businessId"`
	EventID    primitive.ObjectID `bson:"eventId" json:"eventId"`
	Name       string             `bson:"name" json:"name"`
	Cost       float64            `bson:"cost" json:"cost"`
	Status     string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (t *Ticket) GetID() primitive.ObjectID   { return t.ID }
func (t *Ticket) SetID(id primitive.ObjectID) { t.ID = id }

// Box is a reservable table or area at an event.
type Box struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusinessID primitive.ObjectID `bson:"businessId" json:"businessId"`
	EventID    primitive.ObjectID `bson:"eventId" json:"eventId"`
	Name       string             `bson:"name" json:"name"`
	Capacity   int                `bson:"capacity" json:"capacity"`
	Cost       float64            `bson:"cost" json:"cost"`
	Status     string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (b *Box) GetID() primitive.ObjectID   { return b.ID }
func (b *Box) SetID(id primitive.ObjectID) { b.ID = id }

// Promoter is an external promoter attached to a business.
type Promoter struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusinessID primitive.ObjectID `bson:"businessId" json:"businessId"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Active     bool               `bson:"active" json:"active"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (p *Promoter) GetID() primitive.ObjectID   { return p.ID }
func (p *Promoter) SetID(id primitive.ObjectID) { p.ID = id }

// Member is a VIP member of the platform.
type Member struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email,omitempty" json:"email,omitempty"`
	DNI   string             `bson:"dni,omitempty" json:"dni,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (m *Member) GetID() primitive.ObjectID   { return m.ID }
func (m *Member) SetID(id primitive.ObjectID) { m.ID = id }
