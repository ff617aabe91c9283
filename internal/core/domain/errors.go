package domain

import "errors"

// Validation failures are semantic rejections reported synchronously to the
// caller; nothing here is transient or retryable.
var (
	// ErrValidation covers malformed or missing required input, e.g. an
	// absent required filter parameter.
	ErrValidation = errors.New("invalid input")

	// ErrRoleViolation is returned when a user's role does not permit the
	// requested relationship (non-owner owning a house, non-tenant being
	// assigned as chief tenant).
	ErrRoleViolation = errors.New("role not permitted for this operation")

	// ErrHouseExists is returned when an owner registers the same
	// house_number twice.
	ErrHouseExists = errors.New("house number already registered for this owner")

	// ErrDuplicateUnit is returned when an apartment number is already
	// occupied within the same house.
	ErrDuplicateUnit = errors.New("apartment already occupied in this house")

	// ErrDuplicateActiveAssignment is returned when a user already holds an
	// active chief tenant assignment.
	ErrDuplicateActiveAssignment = errors.New("user already has an active chief tenant assignment")

	ErrUserNotFound       = errors.New("user not found")
	ErrHouseNotFound      = errors.New("house not found")
	ErrOccupantNotFound   = errors.New("occupant not found")
	ErrAssignmentNotFound = errors.New("assignment not found")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
)
