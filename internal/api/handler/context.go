package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estateops/property-registry/internal/core/domain"
)

// ctxActor extracts the principal injected by the Auth middleware and
// performs a fast-fail check before any service call: both the user id and
// role must be present, otherwise the JWT is structurally valid but
// operationally unusable.
func ctxActor(c echo.Context) (domain.Actor, error) {
	role, _ := c.Get("role").(string)
	userID, _ := c.Get("user_id").(string)
	if role == "" || userID == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Actor{ID: userID, Role: role}, nil
}
