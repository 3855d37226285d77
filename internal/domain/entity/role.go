package entity

import "errors"

// Role is one of the fixed staff roles an account can hold.
type Role string

const (
	RoleReception  Role = "reception"
	RoleDoctor     Role = "doctor"
	RolePharmacist Role = "pharmacist"
	RoleAdmin      Role = "admin"
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleReception, RoleDoctor, RolePharmacist, RoleAdmin}

var (
	ErrInvalidRole           = errors.New("invalid role")
	ErrSecondaryRoleConflict = errors.New("secondary role must be different from primary role")
)

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleReception, RoleDoctor, RolePharmacist, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts s into a Role, rejecting anything outside the role set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// RoleSet is the primary/secondary role pair held by an account.
type RoleSet struct {
	Primary   Role
	Secondary *Role
}

// NewRoleSet validates both roles and rejects a secondary role equal to the primary.
func NewRoleSet(primary Role, secondary *Role) (RoleSet, error) {
	if !primary.Valid() {
		return RoleSet{}, ErrInvalidRole
	}
	if secondary != nil {
		if !secondary.Valid() {
			return RoleSet{}, ErrInvalidRole
		}
		if *secondary == primary {
			return RoleSet{}, ErrSecondaryRoleConflict
		}
	}
	return RoleSet{Primary: primary, Secondary: secondary}, nil
}

// Has reports whether role is either the primary or the secondary role.
func (s RoleSet) Has(role Role) bool {
	if s.Primary == role {
		return true
	}
	return s.Secondary != nil && *s.Secondary == role
}

// HasAny reports whether the set contains at least one of roles.
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Roles returns the held roles, primary first.
func (s RoleSet) Roles() []Role {
	if s.Secondary == nil {
		return []Role{s.Primary}
	}
	return []Role{s.Primary, *s.Secondary}
}
