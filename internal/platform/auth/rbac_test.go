package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		role, perm string
		want       bool
	}{
		{RoleAdmin, PermDeletePatients, true},
		{RoleAdmin, PermAssignTeam, true},
		{RoleProfesional, PermCreatePatients, true},
		{RoleProfesional, PermDeletePatients, false},
		{RoleProfesional, PermAssignTeam, true},
		{RoleCuidador, PermEditPatients, true},
		{RoleCuidador, PermDeletePatients, true},
		{RoleCuidador, PermAssignTeam, false},
		{RoleFamiliar, PermEditPatients, false},
		{RoleFamiliar, PermCreatePatients, false},
		{RoleFamiliar, PermDeletePatients, false},
		{RoleFamiliar, PermAssignTeam, false},
		{"DESCONOCIDO", PermEditPatients, false},
		{"", PermEditPatients, false},
	}
	for _, tc := range cases {
		if got := HasPermission(tc.role, tc.perm); got != tc.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleProfesional, RoleCuidador, RoleFamiliar} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	if ValidRole("SUPERUSUARIO") {
		t.Error("ValidRole accepted an unknown role")
	}
}

func TestRequirePermission(t *testing.T) {
	e := echo.New()
	handler := RequirePermission(PermCreatePatients)(func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})

	invoke := func(role string) (int, error) {
		req := httptest.NewRequest(http.MethodPost, "/patients", nil)
		ctx := context.WithValue(req.Context(), UserRoleKey, role)
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		err := handler(e.NewContext(req, rec))
		return rec.Code, err
	}

	if code, err := invoke(RoleProfesional); err != nil || code != http.StatusCreated {
		t.Errorf("PROFESIONAL_SALUD: code=%d err=%v, want 201", code, err)
	}

	_, err := invoke(RoleFamiliar)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("FAMILIAR: err = %v, want 403", err)
	}
}

func TestRoleLabel(t *testing.T) {
	if got := RoleLabel(RoleProfesional); got != "profesional de salud" {
		t.Errorf("RoleLabel = %q", got)
	}
	if got := RoleLabel("lo-que-sea"); got != "usuario" {
		t.Errorf("RoleLabel fallback = %q, want usuario", got)
	}
}
