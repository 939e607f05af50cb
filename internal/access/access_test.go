// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gravadora/internal/access"
	"github.com/taibuivan/gravadora/internal/platform/sec"
	"github.com/taibuivan/gravadora/internal/profile"
	"github.com/taibuivan/gravadora/pkg/slice"
)

func withRole(role sec.Role) *profile.Profile {
	return &profile.Profile{ID: "u1", Name: "a", Email: "a@b.com", Role: role}
}

/*
TestHasPermission checks the membership rule and its denial defaults.
*/
func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		profile  *profile.Profile
		required []sec.Role
		want     bool
	}{
		{"nil_profile", nil, []sec.Role{sec.RoleAdmin}, false},
		{"nil_profile_everyone", nil, []sec.Role{sec.RoleAdmin, sec.RoleProducao, sec.RoleFinanceiro}, false},
		{"empty_set", withRole(sec.RoleAdmin), nil, false},
		{"admin_required_admin", withRole(sec.RoleAdmin), []sec.Role{sec.RoleAdmin}, true},
		{"admin_required_producao", withRole(sec.RoleProducao), []sec.Role{sec.RoleAdmin}, false},
		{"admin_required_financeiro", withRole(sec.RoleFinanceiro), []sec.Role{sec.RoleAdmin}, false},
		{"legacy_executivo", withRole(sec.RoleExecutivo), []sec.Role{sec.RoleAdmin}, false},
		{"legacy_viewer", withRole(sec.RoleViewer), []sec.Role{sec.RoleAdmin, sec.RoleProducao, sec.RoleFinanceiro}, false},
		{"member_of_many", withRole(sec.RoleFinanceiro), []sec.Role{sec.RoleAdmin, sec.RoleFinanceiro}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.HasPermission(tt.profile, tt.required...))
		})
	}
}

/*
TestCanAccess checks the route table.
*/
func TestCanAccess(t *testing.T) {
	tests := []struct {
		role  sec.Role
		path  string
		allow bool
	}{
		{sec.RoleAdmin, "/usuarios", true},
		{sec.RoleProducao, "/usuarios", false},
		{sec.RoleFinanceiro, "/financeiro", true},
		{sec.RoleProducao, "/financeiro", false},
		{sec.RoleProducao, "/artistas", true},
		{sec.RoleFinanceiro, "/artistas", false},
		{sec.RoleFinanceiro, "/orcamentos", true},
		{sec.RoleProducao, "/dashboard", true},
		{sec.RoleAdmin, "/desconhecida", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.allow, access.CanAccess(withRole(tt.role), tt.path))
		})
	}

	assert.False(t, access.CanAccess(nil, "/dashboard"))
}

/*
TestNavigation lists visible areas in order.
*/
func TestNavigation(t *testing.T) {
	paths := func(routes []access.Route) []string {
		return slice.Map(routes, func(route access.Route) string { return route.Path })
	}

	assert.Len(t, access.Navigation(withRole(sec.RoleAdmin)), len(access.Routes))

	assert.Equal(t,
		[]string{"/dashboard", "/orcamentos", "/financeiro", "/documentos"},
		paths(access.Navigation(withRole(sec.RoleFinanceiro))),
	)

	assert.Equal(t,
		[]string{"/dashboard", "/artistas", "/projetos", "/orcamentos", "/lancamentos", "/documentos"},
		paths(access.Navigation(withRole(sec.RoleProducao))),
	)

	assert.Empty(t, access.Navigation(nil))
	assert.Empty(t, access.Navigation(withRole(sec.RoleOperador)))
}
