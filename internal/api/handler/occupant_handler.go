package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estateops/property-registry/internal/core/ports"
)

// OccupantHandler handles HTTP requests for occupant records.
type OccupantHandler struct {
	service ports.OccupantService
}

func NewOccupantHandler(service ports.OccupantService) *OccupantHandler {
	return &OccupantHandler{service: service}
}

type createOccupantRequest struct {
	HouseID         string `json:"house_id"         validate:"required"`
	FullName        string `json:"full_name"        validate:"required,min=2"`
	ApartmentNumber string `json:"apartment_number"`
	IsChiefTenant   bool   `json:"is_chief_tenant"`
}

type updateOccupantRequest struct {
	FullName        *string `json:"full_name"        validate:"omitempty,min=2"`
	ApartmentNumber *string `json:"apartment_number"`
	IsChiefTenant   *bool   `json:"is_chief_tenant"`
}

// List handles GET /v1/occupants.
//
// @Summary      List occupants visible to the actor
// @Tags         occupants
// @Produce      json
// @Security     BearerAuth
// @Param        house_id  query     string  false  "Filter by house"
// @Param        chiefs    query     bool    false  "Chief tenants only"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listOccupantsResponse
// @Router       /v1/occupants [get]
func (h *OccupantHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), actor, ports.ListOccupantsInput{
		HouseID:    c.QueryParam("house_id"),
		ChiefsOnly: c.QueryParam("chiefs") == "true",
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListOccupantsResponse(result))
}

// ListByHouse handles GET /v1/occupants/by-house. Unlike List, the house
// filter is mandatory here.
//
// @Summary      List occupants of one house
// @Tags         occupants
// @Produce      json
// @Security     BearerAuth
// @Param        house_id  query     string  true  "House id"
// @Success      200       {object}  listOccupantsResponse
// @Failure      400       {object}  errorResponse
// @Router       /v1/occupants/by-house [get]
func (h *OccupantHandler) ListByHouse(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	houseID := c.QueryParam("house_id")
	if houseID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "house_id parameter is required"})
	}

	result, err := h.service.List(c.Request().Context(), actor, ports.ListOccupantsInput{
		HouseID: houseID,
		Page:    queryInt(c, "page"),
		Limit:   queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListOccupantsResponse(result))
}

// ListChiefs handles GET /v1/occupants/chief-tenants.
//
// @Summary      List occupants marked as chief tenants
// @Tags         occupants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listOccupantsResponse
// @Router       /v1/occupants/chief-tenants [get]
func (h *OccupantHandler) ListChiefs(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), actor, ports.ListOccupantsInput{
		ChiefsOnly: true,
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListOccupantsResponse(result))
}

// Get handles GET /v1/occupants/:id.
//
// @Summary      Get an occupant
// @Tags         occupants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Occupant id"
// @Success      200  {object}  occupantResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/occupants/{id} [get]
func (h *OccupantHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	occupant, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOccupantResponse(*occupant))
}

// Create handles POST /v1/occupants.
//
// @Summary      Register an occupant under a house
// @Tags         occupants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOccupantRequest  true  "Occupant details"
// @Success      201   {object}  occupantResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/occupants [post]
func (h *OccupantHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createOccupantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	occupant, err := h.service.Create(c.Request().Context(), actor, ports.CreateOccupantInput{
		HouseID:         req.HouseID,
		FullName:        req.FullName,
		ApartmentNumber: req.ApartmentNumber,
		IsChiefTenant:   req.IsChiefTenant,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOccupantResponse(ports.OccupantSummary{Occupant: *occupant}))
}

// Update handles PUT /v1/occupants/:id.
//
// @Summary      Update an occupant
// @Tags         occupants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Occupant id"
// @Param        body  body      updateOccupantRequest  true  "Fields to update"
// @Success      200   {object}  occupantResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/occupants/{id} [put]
func (h *OccupantHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateOccupantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	occupant, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateOccupantInput{
		FullName:        req.FullName,
		ApartmentNumber: req.ApartmentNumber,
		IsChiefTenant:   req.IsChiefTenant,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOccupantResponse(ports.OccupantSummary{Occupant: *occupant}))
}

// Delete handles DELETE /v1/occupants/:id.
//
// @Summary      Remove an occupant
// @Tags         occupants
// @Security     BearerAuth
// @Param        id  path  string  true  "Occupant id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/occupants/{id} [delete]
func (h *OccupantHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
