package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Roles recognized by the deployment. A caller has exactly one.
const (
	RoleAdmin       = "ADMIN"
	RoleProfesional = "PROFESIONAL_SALUD"
	RoleCuidador    = "CUIDADOR"
	RoleFamiliar    = "FAMILIAR"
)

// Permissions consulted by route handlers.
const (
	PermCreatePatients = "crearPacientes"
	PermEditPatients   = "editarPacientes"
	PermDeletePatients = "eliminarPacientes"
	PermAssignTeam     = "asignarEquipo"
)

// rolePermissions mirrors the role/permission table of the web client.
// Caregiver edit and delete are additionally creator-scoped in the patient
// service; family members can view and converse but never modify records.
var rolePermissions = map[string]map[string]bool{
	RoleAdmin: {
		PermCreatePatients: true,
		PermEditPatients:   true,
		PermDeletePatients: true,
		PermAssignTeam:     true,
	},
	RoleProfesional: {
		PermCreatePatients: true,
		PermEditPatients:   true,
		PermAssignTeam:     true,
	},
	RoleCuidador: {
		PermCreatePatients: true,
		PermEditPatients:   true,
		PermDeletePatients: true,
	},
	RoleFamiliar: {},
}

// HasPermission reports whether the given role grants the permission.
// Unknown roles grant nothing.
func HasPermission(role, permission string) bool {
	return rolePermissions[role][permission]
}

// ValidRole reports whether the role is one the deployment recognizes.
func ValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// RoleLabel returns a human-readable Spanish label for a role, used when the
// assistant introduces the caller to the language model.
func RoleLabel(role string) string {
	switch role {
	case RoleAdmin:
		return "administrador"
	case RoleProfesional:
		return "profesional de salud"
	case RoleCuidador:
		return "cuidador"
	case RoleFamiliar:
		return "familiar"
	default:
		return "usuario"
	}
}

// RequireRole returns middleware that checks if the user has one of the
// required roles. ADMIN always passes.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRole := RoleFromContext(c.Request().Context())
			if userRole == RoleAdmin {
				return next(c)
			}
			for _, required := range roles {
				if userRole == required {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}

// RequirePermission returns middleware that checks the caller's role against
// the permission table.
func RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleFromContext(c.Request().Context())
			if !HasPermission(role, permission) {
				return echo.NewHTTPError(http.StatusForbidden,
					"tu rol no tiene permisos para esta operación")
			}
			return next(c)
		}
	}
}
