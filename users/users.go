package users

import (
	"slices"
	"strings"
)

// Kind discriminates the decoded principal. Admin principals may enter the admin area.
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

// RoleType represents a platform role carried in the access token
type RoleType string

const (
	RoleAdmin    RoleType = "admin"    // Portal administrator
	RoleAgent    RoleType = "agent"    // Agency staff publishing listings for clients
	RoleLandlord RoleType = "landlord" // Owner publishing their own listings
	RoleTenant   RoleType = "tenant"   // Regular renter
	RoleVIP      RoleType = "vip"      // Paid membership tier
)

type User struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Roles     []RoleType `json:"roles,omitempty"`
	Kind      Kind       `json:"kind,omitempty"`
}

// Patch is a partial profile update. Nil fields are left untouched.
type Patch struct {
	FirstName *string    `json:"firstName,omitempty"`
	LastName  *string    `json:"lastName,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Roles     []RoleType `json:"roles,omitempty"`
}

// IsEmpty reports whether the patch would change nothing
func (p Patch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Roles == nil
}

// Apply shallow-merges p into a copy of u
func (u User) Apply(p Patch) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Roles != nil {
		u.Roles = slices.Clone(p.Roles)
	} else {
		u.Roles = slices.Clone(u.Roles)
	}
	return u
}

func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Email
}

func (u User) HasRole(role RoleType) bool {
	return slices.Contains(u.Roles, role)
}

// IsAdmin returns true for admin principals or users holding the admin role
func (u User) IsAdmin() bool {
	return u.Kind == KindAdmin || u.HasRole(RoleAdmin)
}

// KindForRoles derives the principal kind when the token does not carry one
func KindForRoles(roles []RoleType) Kind {
	if slices.Contains(roles, RoleAdmin) {
		return KindAdmin
	}
	return KindUser
}
