// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access decides which roles may reach which back-office areas.

The single rule is [HasPermission]: a profile passes when its role is in the
required set. Everything else here is the static route table built on top of
that rule, shared by the HTTP guards and by navigation rendering so the two
can never disagree.
*/
package access

import (
	"slices"

	"github.com/taibuivan/gravadora/internal/platform/sec"
	"github.com/taibuivan/gravadora/internal/profile"
	"github.com/taibuivan/gravadora/pkg/slice"
)

// HasPermission reports whether the profile's role is one of required.
//
// A nil profile never passes, and neither does an empty required set.
func HasPermission(p *profile.Profile, required ...sec.Role) bool {
	if p == nil {
		return false
	}
	return slices.Contains(required, p.Role)
}

// # Route Table

// Route is one protected back-office area.
type Route struct {
	Path  string     `json:"path"`
	Label string     `json:"label"`
	Roles []sec.Role `json:"-"`
}

var (
	everyone   = []sec.Role{sec.RoleAdmin, sec.RoleProducao, sec.RoleFinanceiro}
	production = []sec.Role{sec.RoleAdmin, sec.RoleProducao}
	finance    = []sec.Role{sec.RoleAdmin, sec.RoleFinanceiro}
)

// Routes lists the areas in navigation order.
var Routes = []Route{
	{Path: "/dashboard", Label: "Dashboard", Roles: everyone},
	{Path: "/artistas", Label: "Artistas", Roles: production},
	{Path: "/projetos", Label: "Projetos", Roles: production},
	{Path: "/orcamentos", Label: "Orçamentos", Roles: everyone},
	{Path: "/financeiro", Label: "Financeiro", Roles: finance},
	{Path: "/lancamentos", Label: "Lançamentos", Roles: production},
	{Path: "/documentos", Label: "Documentos", Roles: everyone},
	{Path: "/usuarios", Label: "Usuários", Roles: []sec.Role{sec.RoleAdmin}},
}

// RolesFor returns the roles allowed on a route path, or nil for unknown paths.
func RolesFor(path string) []sec.Role {
	for _, route := range Routes {
		if route.Path == path {
			return route.Roles
		}
	}
	return nil
}

// CanAccess reports whether the profile may open the route path.
// Unknown paths are denied.
func CanAccess(p *profile.Profile, path string) bool {
	return HasPermission(p, RolesFor(path)...)
}

// Navigation returns the routes visible to the profile, in display order.
func Navigation(p *profile.Profile) []Route {
	return slice.Filter(Routes, func(route Route) bool {
		return HasPermission(p, route.Roles...)
	})
}
