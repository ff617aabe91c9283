package domain

import "time"

// ChiefTenantAssignment designates a tenant as the primary responsible
// occupant of a house. A user holds at most one assignment (one-to-one), and
// a house has at most one active assignment at any time: writing a new
// active assignment deactivates its siblings within the same transaction.
//
// is_active toggles between active and inactive indefinitely; assignments
// are never deleted except by cascade from their house or user.
type ChiefTenantAssignment struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	UserID         string    `json:"user_id" bson:"user_id"`
	HouseID        string    `json:"house_id" bson:"house_id"`
	OwnerID        string    `json:"-" bson:"owner_id"`
	AssignmentDate time.Time `json:"assignment_date" bson:"assignment_date"`
	IsActive       bool      `json:"is_active" bson:"is_active"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
