package domain

import "time"

// HouseType classifies a registered property.
type HouseType string

const (
	TypeApartment    HouseType = "apartment"
	TypeSingleFamily HouseType = "single_family"
	TypeDuplex       HouseType = "duplex"
	TypeTownhouse    HouseType = "townhouse"
	TypeCondo        HouseType = "condo"
)

// ValidHouseType reports whether t is a known house type.
func ValidHouseType(t HouseType) bool {
	switch t {
	case TypeApartment, TypeSingleFamily, TypeDuplex, TypeTownhouse, TypeCondo:
		return true
	}
	return false
}

// House is a registered property. The owner is fixed at creation and must
// hold the owner role. (owner_id, house_number) is unique: one owner cannot
// register the same address twice, but two owners may share a street number.
type House struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	OwnerID       string    `json:"owner_id" bson:"owner_id"`
	HouseType     HouseType `json:"house_type" bson:"house_type"`
	HouseNumber   string    `json:"house_number" bson:"house_number"`
	NumApartments int       `json:"num_apartments" bson:"num_apartments"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
