package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request statuses. A request starts pending and ends approved or
// rejected; both terminal states are final.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	// StatusConfirmed is the only status an Appointment ever carries.
	StatusConfirmed = "confirmed"
)

// Request is a client-submitted booking awaiting the barber's decision.
type Request struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Start       time.Time          `bson:"start"         json:"start"`
	End         time.Time          `bson:"end"           json:"end"`
	ClientName  string             `bson:"client_name"   json:"client_name"`
	ClientPhone string             `bson:"client_phone"  json:"client_phone"`
	Service     string             `bson:"service"       json:"service"`
	Status      string             `bson:"status"        json:"status"`
	CreatedAt   time.Time          `bson:"created_at"    json:"created_at"`
}

// Appointment is a confirmed booking, materialized exactly once from an
// approved Request. It copies the request fields rather than referencing
// the request by id, so rolling back an approval never has to delete one.
type Appointment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Start       time.Time          `bson:"start"         json:"start"`
	End         time.Time          `bson:"end"           json:"end"`
	ClientName  string             `bson:"client_name"   json:"client_name"`
	ClientPhone string             `bson:"client_phone"  json:"client_phone"`
	Service     string             `bson:"service"       json:"service"`
	Status      string             `bson:"status"        json:"status"`
}

// Service is a catalog entry. Removal goes through active=false; the
// store supports hard deletes but soft-disable keeps history intact.
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name"          json:"name"`
	Price       float64            `bson:"price"         json:"price"`
	Description string             `bson:"description"   json:"description"`
	Duration    int                `bson:"duration"      json:"duration"`
	Active      bool               `bson:"active"        json:"active"`
	CreatedAt   time.Time          `bson:"created_at"    json:"created_at"`
}
