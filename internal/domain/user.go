package domain

import "time"

// Role enumerates the three operator roles of the platform.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleEngineer    Role = "ENGINEER"
	RoleHealthStaff Role = "HEALTH_STAFF"
)

// Role ordinals as stored in the roles reference table.
const (
	roleOrdinalAdmin       = 1
	roleOrdinalEngineer    = 2
	roleOrdinalHealthStaff = 3
)

// Ordinal returns the persistence id for the role, 0 for unknown roles.
func (r Role) Ordinal() int {
	switch r {
	case RoleAdmin:
		return roleOrdinalAdmin
	case RoleEngineer:
		return roleOrdinalEngineer
	case RoleHealthStaff:
		return roleOrdinalHealthStaff
	}
	return 0
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.Ordinal() != 0
}

// RoleFromOrdinal maps a stored role id back to its named variant.
func RoleFromOrdinal(id int) (Role, bool) {
	switch id {
	case roleOrdinalAdmin:
		return RoleAdmin, true
	case roleOrdinalEngineer:
		return RoleEngineer, true
	case roleOrdinalHealthStaff:
		return RoleHealthStaff, true
	}
	return "", false
}

// User models any account in the directory: administrators, engineers
// and health-facility staff.
type User struct {
	ID             string
	Name           string
	Surname        string
	Email          string
	Phone          string
	Role           Role
	PositionID     *string
	MunicipalityID *string
	Active         bool
	PasswordHash   string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Display names resolved by joined reads; empty on plain fetches.
	Position     string
	Municipality string
}

// FullName renders the display name used in notifications and listings.
func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// Identity is the verified caller attached to every request. The core
// trusts it as already authenticated and performs no credential checks.
type Identity struct {
	UserID         string
	Name           string
	Email          string
	Role           Role
	MunicipalityID *string
	Municipality   string
}
