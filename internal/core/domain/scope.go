package domain

// Actor is the authenticated principal resolved from the request token.
type Actor struct {
	ID   string
	Role string
}

// Scope restricts which rows an actor may observe. Zero-value fields mean
// no restriction. Repositories translate a Scope into query filters and
// apply it to list reads and by-id reads alike: an out-of-scope id behaves
// as not found, never as forbidden, so existence does not leak.
type Scope struct {
	// OwnerID restricts rows to houses owned by this user. Occupants and
	// assignments carry a denormalized owner_id, so the same predicate
	// applies to dependents without a join.
	OwnerID string
	// UserID restricts assignments to ones held by this user.
	UserID string
}

// Unrestricted reports whether the scope filters nothing.
func (s Scope) Unrestricted() bool {
	return s.OwnerID == "" && s.UserID == ""
}

// predicate enumerates the row filters a role may be subject to.
type predicate int

const (
	allRows predicate = iota
	byHouseOwner
	byAssignedUser
)

// scopeRule fixes the predicate per entity class for one role. Keeping the
// three entity classes in a single table guarantees they cannot drift apart.
type scopeRule struct {
	houses      predicate
	occupants   predicate
	assignments predicate
}

var scopeRules = map[string]scopeRule{
	RoleOwner: {houses: byHouseOwner, occupants: byHouseOwner, assignments: byHouseOwner},
	RoleAdmin: {houses: allRows, occupants: allRows, assignments: allRows},
	// Tenants may browse all houses and occupants but only their own
	// assignments.
	RoleTenant: {houses: allRows, occupants: allRows, assignments: byAssignedUser},
}

func (a Actor) scope(p predicate) Scope {
	switch p {
	case byHouseOwner:
		return Scope{OwnerID: a.ID}
	case byAssignedUser:
		return Scope{UserID: a.ID}
	default:
		return Scope{}
	}
}

// rule returns the scope rule for the actor's role. Unknown roles get the
// most restrictive treatment: scoped to rows they own or hold, which for a
// role that owns nothing yields empty result sets.
func (a Actor) rule() scopeRule {
	if r, ok := scopeRules[a.Role]; ok {
		return r
	}
	return scopeRule{houses: byHouseOwner, occupants: byHouseOwner, assignments: byAssignedUser}
}

// HouseScope returns the visibility scope for House reads.
func (a Actor) HouseScope() Scope { return a.scope(a.rule().houses) }

// OccupantScope returns the visibility scope for Occupant reads.
func (a Actor) OccupantScope() Scope { return a.scope(a.rule().occupants) }

// AssignmentScope returns the visibility scope for ChiefTenantAssignment reads.
func (a Actor) AssignmentScope() Scope { return a.scope(a.rule().assignments) }

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
