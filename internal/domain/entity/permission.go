package entity

import "slices"

// Permission represents a single capability granted to an identity.
type Permission string

const (
	// PermissionRead allows reading entity collections.
	PermissionRead Permission = "read"
	// PermissionWrite allows creating and updating documents.
	PermissionWrite Permission = "write"
	// PermissionDelete allows deactivating documents.
	PermissionDelete Permission = "delete"
	// PermissionAdmin implies every other permission.
	PermissionAdmin Permission = "admin"
)

// String returns the string representation of the Permission.
func (p Permission) String() string {
	return string(p)
}

// IsValid checks if the Permission is a valid value.
func (p Permission) IsValid() bool {
	switch p {
	case PermissionRead, PermissionWrite, PermissionDelete, PermissionAdmin:
		return true
	default:
		return false
	}
}

// Permissions is the set of capabilities held by an identity.
type Permissions []Permission

// Contains checks if the permission set contains a specific permission.
func (ps Permissions) Contains(p Permission) bool {
	return slices.Contains(ps, p)
}

// HasAll reports whether the set satisfies every required permission.
// The admin permission satisfies any requirement.
func (ps Permissions) HasAll(required ...Permission) bool {
	if ps.Contains(PermissionAdmin) {
		return true
	}
	for _, p := range required {
		if !ps.Contains(p) {
			return false
		}
	}

	return true
}
