// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can edit and unpublish any learning path and leave system messages
	RoleModerator UserRole = "moderator"

	// Can create learning paths and edit the ones they own
	RoleEditor UserRole = "editor"

	// Default role for standard registered users
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleModerator:
		return 30
	case RoleEditor:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}

// # Principal

// Principal is the requesting identity as seen by the domain layer.
//
// The zero value is an anonymous visitor.
type Principal struct {
	UserID string
	Role   UserRole
}

// PrincipalFrom converts verified claims into a [Principal]. Nil claims yield an anonymous principal.
func PrincipalFrom(claims *AuthClaims) Principal {
	if claims == nil {
		return Principal{}
	}
	return Principal{UserID: claims.UserID, Role: UserRole(claims.Role)}
}

// IsAnonymous reports whether the principal carries no identity.
func (p Principal) IsAnonymous() bool {
	return p.UserID == ""
}

// IsModerator reports whether the principal may act on content it does not own.
func (p Principal) IsModerator() bool {
	return !p.IsAnonymous() && p.Role.AtLeast(RoleModerator)
}

// Owns reports whether the principal is the owner identified by ownerID.
func (p Principal) Owns(ownerID *string) bool {
	return !p.IsAnonymous() && ownerID != nil && *ownerID == p.UserID
}
