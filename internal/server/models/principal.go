package models

import (
	"strings"

	"github.com/dmitrijs2005/eventdesk/internal/common"
)

// Role is the principal's type.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", common.ErrInvalidRole
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Principal is an authenticated identity. IDs of users and admins live in
// different tables, so the role is part of the identity.
type Principal struct {
	ID   int64
	Role Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccessOwner reports whether p may read or mutate data owned by the
// user ownerID: the owner itself or any admin.
func (p Principal) CanAccessOwner(ownerID int64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.Role == RoleUser && p.ID == ownerID
}
