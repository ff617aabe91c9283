package domain

import "time"

const (
	RoleOwner  = "owner"
	RoleTenant = "tenant"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role is one of the known business roles.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleTenant || role == RoleAdmin
}

// User models an authenticated actor in the system. Role is a fixed business
// classification: it gates which entities the user may own or be assigned to.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	Username     string    `json:"username" bson:"username"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name" bson:"last_name"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// FullName returns the display name used in denormalized read-only fields.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
