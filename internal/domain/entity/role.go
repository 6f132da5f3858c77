// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an identity can have in the system.
type Role string

const (
	// RoleAdmin grants unrestricted access to every operation.
	RoleAdmin Role = "admin"
	// RoleManager indicates a store manager.
	RoleManager Role = "manager"
	// RoleCashier indicates a point-of-sale operator.
	RoleCashier Role = "cashier"
	// RoleUser indicates a regular back-office user.
	RoleUser Role = "user"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier, RoleUser:
		return true
	default:
		return false
	}
}

// Satisfies reports whether this role meets a required role.
// Admins satisfy every role requirement.
func (r Role) Satisfies(required Role) bool {
	return r == required || r == RoleAdmin
}
