package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/estateops/property-registry/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("house_number missing: %w", domain.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("owner has role tenant: %w", domain.ErrRoleViolation), http.StatusUnprocessableEntity},
		{domain.ErrHouseExists, http.StatusConflict},
		{domain.ErrDuplicateUnit, http.StatusConflict},
		{domain.ErrDuplicateActiveAssignment, http.StatusConflict},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrHouseNotFound, http.StatusNotFound},
		{domain.ErrOccupantNotFound, http.StatusNotFound},
		{domain.ErrAssignmentNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError},
		{echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot},
	}

	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tt.err, c)

		if rec.Code != tt.code {
			t.Fatalf("error %v: expected %d, got %d", tt.err, tt.code, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("error %v: invalid json body: %v", tt.err, err)
		}
		if body["error"] == "" {
			t.Fatalf("error %v: expected error message in body", tt.err)
		}
	}
}

func TestHTTPErrorHandler_InternalErrorHidesCause(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("mongo: connection reset by peer"), c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal cause leaked to client: %q", body["error"])
	}
}
