package handler

import (
	"time"

	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// Response-only types owned by the transport layer. They are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes. List items use summary shapes; detail shapes
// embed dependent collections and appear only on single-item retrieval.

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func toPaginationResponse(p ports.Page) paginationResponse {
	return paginationResponse{Total: p.Total, Page: p.Page, Limit: p.Limit, TotalPages: p.TotalPages}
}

// --- Users ---

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type userDetailResponse struct {
	userResponse
	OwnedHouses []houseSummaryResponse `json:"owned_houses"`
	Assignment  *assignmentResponse    `json:"chief_tenant_assignment,omitempty"`
}

func toUserDetailResponse(d *ports.UserDetail) userDetailResponse {
	resp := userDetailResponse{
		userResponse: toUserResponse(&d.User),
		OwnedHouses:  make([]houseSummaryResponse, len(d.OwnedHouses)),
	}
	for i, h := range d.OwnedHouses {
		resp.OwnedHouses[i] = toHouseSummaryResponse(h)
	}
	if d.Assignment != nil {
		a := toAssignmentResponse(*d.Assignment)
		resp.Assignment = &a
	}
	return resp
}

type listUsersResponse struct {
	Data       []userResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// --- Houses ---

type houseSummaryResponse struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	OwnerEmail     string    `json:"owner_email"`
	OwnerName      string    `json:"owner_name"`
	HouseType      string    `json:"house_type"`
	HouseNumber    string    `json:"house_number"`
	NumApartments  int       `json:"num_apartments"`
	TotalOccupants int       `json:"total_occupants"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toHouseSummaryResponse(s ports.HouseSummary) houseSummaryResponse {
	return houseSummaryResponse{
		ID:             s.ID,
		OwnerID:        s.OwnerID,
		OwnerEmail:     s.OwnerEmail,
		OwnerName:      s.OwnerName,
		HouseType:      string(s.HouseType),
		HouseNumber:    s.HouseNumber,
		NumApartments:  s.NumApartments,
		TotalOccupants: s.TotalOccupants,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

type houseResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	HouseType     string    `json:"house_type"`
	HouseNumber   string    `json:"house_number"`
	NumApartments int       `json:"num_apartments"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toHouseResponse(h *domain.House) houseResponse {
	return houseResponse{
		ID:            h.ID,
		OwnerID:       h.OwnerID,
		HouseType:     string(h.HouseType),
		HouseNumber:   h.HouseNumber,
		NumApartments: h.NumApartments,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}

type houseDetailResponse struct {
	houseSummaryResponse
	Occupants   []occupantResponse   `json:"occupants"`
	Assignments []assignmentResponse `json:"chief_tenant_assignments"`
}

func toHouseDetailResponse(d *ports.HouseDetail) houseDetailResponse {
	resp := houseDetailResponse{
		houseSummaryResponse: toHouseSummaryResponse(d.HouseSummary),
		Occupants:            make([]occupantResponse, len(d.Occupants)),
		Assignments:          make([]assignmentResponse, len(d.Assignments)),
	}
	for i, o := range d.Occupants {
		resp.Occupants[i] = toOccupantResponse(o)
	}
	for i, a := range d.Assignments {
		resp.Assignments[i] = toAssignmentResponse(a)
	}
	return resp
}

type listHousesResponse struct {
	Data       []houseSummaryResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}

func toListHousesResponse(l *ports.HouseList) listHousesResponse {
	items := make([]houseSummaryResponse, len(l.Items))
	for i, s := range l.Items {
		items[i] = toHouseSummaryResponse(s)
	}
	return listHousesResponse{Data: items, Pagination: toPaginationResponse(l.Page)}
}

// --- Occupants ---

type occupantResponse struct {
	ID              string    `json:"id"`
	HouseID         string    `json:"house_id"`
	HouseAddress    string    `json:"house_address"`
	HouseType       string    `json:"house_type"`
	FullName        string    `json:"full_name"`
	ApartmentNumber string    `json:"apartment_number"`
	IsChiefTenant   bool      `json:"is_chief_tenant"`
	MoveInDate      time.Time `json:"move_in_date"`
	CreatedAt       time.Time `json:"created_at"`
}

func toOccupantResponse(s ports.OccupantSummary) occupantResponse {
	return occupantResponse{
		ID:              s.ID,
		HouseID:         s.HouseID,
		HouseAddress:    s.HouseNumber,
		HouseType:       string(s.HouseType),
		FullName:        s.FullName,
		ApartmentNumber: s.ApartmentNumber,
		IsChiefTenant:   s.IsChiefTenant,
		MoveInDate:      s.MoveInDate,
		CreatedAt:       s.CreatedAt,
	}
}

type listOccupantsResponse struct {
	Data       []occupantResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toListOccupantsResponse(l *ports.OccupantList) listOccupantsResponse {
	items := make([]occupantResponse, len(l.Items))
	for i, s := range l.Items {
		items[i] = toOccupantResponse(s)
	}
	return listOccupantsResponse{Data: items, Pagination: toPaginationResponse(l.Page)}
}

// --- Assignments ---

type assignmentResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserEmail      string    `json:"user_email"`
	UserName       string    `json:"user_name"`
	HouseID        string    `json:"house_id"`
	HouseAddress   string    `json:"house_address"`
	AssignmentDate time.Time `json:"assignment_date"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func toAssignmentResponse(s ports.AssignmentSummary) assignmentResponse {
	return assignmentResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		UserEmail:      s.UserEmail,
		UserName:       s.UserName,
		HouseID:        s.HouseID,
		HouseAddress:   s.HouseNumber,
		AssignmentDate: s.AssignmentDate,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
}

// toBareAssignmentResponse renders an assignment when no summary fields
// were assembled (mutation responses).
func toBareAssignmentResponse(a *domain.ChiefTenantAssignment) assignmentResponse {
	return toAssignmentResponse(ports.AssignmentSummary{ChiefTenantAssignment: *a})
}

type listAssignmentsResponse struct {
	Data       []assignmentResponse `json:"data"`
	Pagination paginationResponse   `json:"pagination"`
}

func toListAssignmentsResponse(l *ports.AssignmentList) listAssignmentsResponse {
	items := make([]assignmentResponse, len(l.Items))
	for i, s := range l.Items {
		items[i] = toAssignmentResponse(s)
	}
	return listAssignmentsResponse{Data: items, Pagination: toPaginationResponse(l.Page)}
}
