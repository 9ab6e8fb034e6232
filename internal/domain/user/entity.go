package user

import (
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// User is a directory-provisioned account. The schedule fields are
// per-user overrides; a nil contract type or any nil schedule field
// means the user is not configured for attendance tracking.
type User struct {
	ID           string
	Username     string
	FullName     string
	Email        string
	Role         Role
	TeamID       *string
	ContractType *string

	// Schedule overrides, "HH:MM" local time of day.
	AMStart *string
	AMEnd   *string
	PMStart *string
	PMEnd   *string

	GraceMinutes *int

	// Weekdays the user works, 0=Sunday..6=Saturday.
	// Empty or invalid falls back to Mon-Fri.
	WorkingDays []int

	// DN is the distinguished name in the directory. Empty for
	// locally-created accounts (bootstrap admin).
	DN     string
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Configured reports whether the user has a contract and a fully
// populated schedule. Expected hours are zero and clock-ins are
// rejected for unconfigured users.
func (u User) Configured() bool {
	return u.ContractType != nil &&
		u.AMStart != nil && u.AMEnd != nil &&
		u.PMStart != nil && u.PMEnd != nil
}

func (u User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
