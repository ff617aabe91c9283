package domain

import "time"

// Occupant is a person living in a unit of a house. OwnerID is denormalized
// from the house at creation so owner-scoped queries need no join.
// (house_id, apartment_number) is unique within the store.
type Occupant struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	HouseID         string    `json:"house_id" bson:"house_id"`
	OwnerID         string    `json:"-" bson:"owner_id"`
	FullName        string    `json:"full_name" bson:"full_name"`
	ApartmentNumber string    `json:"apartment_number" bson:"apartment_number"`
	IsChiefTenant   bool      `json:"is_chief_tenant" bson:"is_chief_tenant"`
	MoveInDate      time.Time `json:"move_in_date" bson:"move_in_date"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}
