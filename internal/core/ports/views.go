package ports

import (
	"github.com/estateops/property-registry/internal/core/domain"
)

// Summary shapes are flat entities plus a few denormalized read-only
// fields; they are used in every list response. Detail shapes add embedded
// dependent collections and are used only for single-item retrieval, so
// list payloads stay bounded.

// HouseSummary is a house plus owner contact fields and an occupant count.
type HouseSummary struct {
	domain.House
	OwnerEmail     string
	OwnerName      string
	TotalOccupants int
}

// OccupantSummary is an occupant plus its house's address fields.
type OccupantSummary struct {
	domain.Occupant
	HouseNumber string
	HouseType   domain.HouseType
}

// AssignmentSummary is an assignment plus user contact and house address.
type AssignmentSummary struct {
	domain.ChiefTenantAssignment
	UserEmail   string
	UserName    string
	HouseNumber string
}

// HouseDetail embeds the house's dependents.
type HouseDetail struct {
	HouseSummary
	Occupants   []OccupantSummary
	Assignments []AssignmentSummary
}

// UserDetail embeds the user's owned houses and chief tenant assignment.
type UserDetail struct {
	domain.User
	OwnedHouses []HouseSummary
	Assignment  *AssignmentSummary // nil when the user holds none
}

// Page describes one page of a list result.
type Page struct {
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPage normalizes pagination values and computes the page count.
func NewPage(total int64, page, limit int) Page {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return Page{Total: total, Page: page, Limit: limit, TotalPages: pages}
}
