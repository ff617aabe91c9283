package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/estateops/property-registry/internal/core/domain"
)

func rbacContext(e *echo.Echo, role string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}
	return c, rec
}

func TestRBAC_AllowsListedRoles(t *testing.T) {
	e := echo.New()
	mw := RBAC(domain.RoleOwner, domain.RoleAdmin)

	for _, role := range []string{domain.RoleOwner, domain.RoleAdmin} {
		c, rec := rbacContext(e, role)
		called := false
		err := mw(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})(c)
		if err != nil {
			t.Fatalf("role %s: handler error: %v", role, err)
		}
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("role %s: expected pass-through, got %d", role, rec.Code)
		}
	}
}

func TestRBAC_RejectsOtherRoles(t *testing.T) {
	e := echo.New()
	mw := RBAC(domain.RoleOwner, domain.RoleAdmin)

	for _, role := range []string{domain.RoleTenant, "", "unknown"} {
		c, rec := rbacContext(e, role)
		_ = mw(func(c echo.Context) error {
			t.Fatalf("role %q: next should not be called", role)
			return nil
		})(c)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("role %q: expected 403, got %d", role, rec.Code)
		}
	}
}
