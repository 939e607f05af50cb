// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "fmt"

// # User Roles

// Role represents the authorization category granted to a profile.
//
// Roles are persisted as free text in public.profiles, so every value read
// from storage goes through [ParseRole] before it is trusted.
type Role string

const (
	// Full back-office access, including user administration.
	RoleAdmin Role = "admin"

	// Production staff: roster, projects, releases and documents.
	RoleProducao Role = "producao"

	// Finance staff: budgets, payments and the financial summary.
	RoleFinanceiro Role = "financeiro"
)

// Legacy role values still present in old rows. They are accepted when read
// so that a profile carrying one still loads, but no route grants them and
// they cannot be assigned.
//
// Deprecated: reassign affected profiles to one of [Roles].
const (
	RoleExecutivo Role = "executivo"
	RoleAR        Role = "ar"
	RoleViewer    Role = "viewer"
	RoleOperador  Role = "operador"
)

// Roles lists the assignable roles in display order.
var Roles = []Role{RoleAdmin, RoleProducao, RoleFinanceiro}

// # Parsing

// ParseRole converts a stored string into a [Role].
func ParseRole(value string) (Role, error) {
	role := Role(value)
	if role.IsAssignable() || role.IsLegacy() {
		return role, nil
	}
	return "", fmt.Errorf("sec: unknown role %q", value)
}

// IsAssignable reports whether the role may be set on a profile.
func (r Role) IsAssignable() bool {
	switch r {
	case RoleAdmin, RoleProducao, RoleFinanceiro:
		return true
	default:
		return false
	}
}

// IsLegacy reports whether the role is one of the deprecated values.
func (r Role) IsLegacy() bool {
	switch r {
	case RoleExecutivo, RoleAR, RoleViewer, RoleOperador:
		return true
	default:
		return false
	}
}

// Strings returns the assignable roles as plain strings, for validation messages.
func Strings() []string {
	out := make([]string, len(Roles))
	for i, r := range Roles {
		out[i] = string(r)
	}
	return out
}
