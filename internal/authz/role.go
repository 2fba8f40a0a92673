// Package authz is the authorization engine: it decides, for a given
// (identity, church, operation) tuple, whether the operation is permitted,
// based solely on membership ledger state at decision time. Nothing in this
// package caches decisions; every call re-queries the ledger.
package authz

import (
	"fmt"
	"strings"
)

// Role is a membership role within a church. The set is closed; values are
// canonically lowercase.
type Role string

const (
	// RolePastor is the founding leader role.
	RolePastor Role = "pastor"
	// RoleDeacon is the secondary leader role.
	RoleDeacon Role = "deacon"
	// RoleMember is the default role.
	RoleMember Role = "member"
)

// ParseRole normalizes s case-insensitively and validates it against the
// closed role set. This is the single write-boundary normalization step;
// roles are stored in the form ParseRole returns.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RolePastor:
		return RolePastor, nil
	case RoleDeacon:
		return RoleDeacon, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", fmt.Errorf("unknown role %q (must be one of: pastor, deacon, member)", s)
	}
}

// NormalizeRole lowercases a stored role value without validating it.
// Rows written by earlier revisions may carry mixed casing; lookups must
// still match them, so every read goes through this.
func NormalizeRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// IsLeader reports whether the role carries write privileges within its
// church.
func (r Role) IsLeader() bool {
	return r == RolePastor || r == RoleDeacon
}

// SelfServiceRoles are the roles a self-service signup may request. Leader
// roles are deliberately excluded: role elevation requires the separate
// leader-gated promote operation.
var SelfServiceRoles = []Role{RoleMember}

// SelfServiceRole validates a signup-supplied role string against the
// self-service allow-list. An empty string defaults to member.
func SelfServiceRole(s string) (Role, error) {
	if strings.TrimSpace(s) == "" {
		return RoleMember, nil
	}
	role, err := ParseRole(s)
	if err != nil {
		return "", err
	}
	for _, allowed := range SelfServiceRoles {
		if role == allowed {
			return role, nil
		}
	}
	return "", fmt.Errorf("role %q cannot be self-assigned at signup", role)
}
