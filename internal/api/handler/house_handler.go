package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

// HouseHandler handles HTTP requests for house operations.
type HouseHandler struct {
	service ports.HouseService
}

func NewHouseHandler(service ports.HouseService) *HouseHandler {
	return &HouseHandler{service: service}
}

type createHouseRequest struct {
	OwnerID       string `json:"owner_id"` // admin only; owner actors register for themselves
	HouseType     string `json:"house_type"     validate:"required,oneof=apartment single_family duplex townhouse condo"`
	HouseNumber   string `json:"house_number"   validate:"required,min=1,max=20"`
	NumApartments int    `json:"num_apartments" validate:"omitempty,gte=1"`
}

type updateHouseRequest struct {
	HouseType     *string `json:"house_type"     validate:"omitempty,oneof=apartment single_family duplex townhouse condo"`
	HouseNumber   *string `json:"house_number"   validate:"omitempty,min=1,max=20"`
	NumApartments *int    `json:"num_apartments" validate:"omitempty,gte=1"`
}

// List handles GET /v1/houses.
//
// @Summary      List houses visible to the actor
// @Tags         houses
// @Produce      json
// @Security     BearerAuth
// @Param        type   query     string  false  "Filter by house type"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  listHousesResponse
// @Failure      400    {object}  errorResponse
// @Router       /v1/houses [get]
func (h *HouseHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), actor, ports.ListHousesInput{
		HouseType: domain.HouseType(c.QueryParam("type")),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListHousesResponse(result))
}

// ListByType handles GET /v1/houses/by-type. Unlike List, the type filter
// is mandatory here.
//
// @Summary      List houses of one type
// @Tags         houses
// @Produce      json
// @Security     BearerAuth
// @Param        type  query     string  true  "House type"
// @Success      200   {object}  listHousesResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/houses/by-type [get]
func (h *HouseHandler) ListByType(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	houseType := c.QueryParam("type")
	if houseType == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "house type parameter is required"})
	}

	result, err := h.service.List(c.Request().Context(), actor, ports.ListHousesInput{
		HouseType: domain.HouseType(houseType),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListHousesResponse(result))
}

// Get handles GET /v1/houses/:id.
//
// @Summary      Get a house with its occupants and assignments
// @Tags         houses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "House id"
// @Success      200  {object}  houseDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/houses/{id} [get]
func (h *HouseHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHouseDetailResponse(detail))
}

// Create handles POST /v1/houses.
//
// @Summary      Register a house
// @Tags         houses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createHouseRequest  true  "House details"
// @Success      201   {object}  houseResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/houses [post]
func (h *HouseHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createHouseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	house, err := h.service.Create(c.Request().Context(), actor, ports.CreateHouseInput{
		OwnerID:       req.OwnerID,
		HouseType:     domain.HouseType(req.HouseType),
		HouseNumber:   req.HouseNumber,
		NumApartments: req.NumApartments,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toHouseResponse(house))
}

// Update handles PUT /v1/houses/:id.
//
// @Summary      Update a house
// @Tags         houses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "House id"
// @Param        body  body      updateHouseRequest  true  "Fields to update"
// @Success      200   {object}  houseResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/houses/{id} [put]
func (h *HouseHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateHouseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	var houseType *domain.HouseType
	if req.HouseType != nil {
		t := domain.HouseType(*req.HouseType)
		houseType = &t
	}

	house, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateHouseInput{
		HouseType:     houseType,
		HouseNumber:   req.HouseNumber,
		NumApartments: req.NumApartments,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHouseResponse(house))
}

// Delete handles DELETE /v1/houses/:id.
//
// @Summary      Delete a house and its dependents
// @Tags         houses
// @Security     BearerAuth
// @Param        id  path  string  true  "House id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/houses/{id} [delete]
func (h *HouseHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Occupants handles GET /v1/houses/:id/occupants.
//
// @Summary      List the occupants of a house
// @Tags         houses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "House id"
// @Success      200  {array}   occupantResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/houses/{id}/occupants [get]
func (h *HouseHandler) Occupants(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	occupants, err := h.service.Occupants(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]occupantResponse, len(occupants))
	for i, o := range occupants {
		out[i] = toOccupantResponse(o)
	}
	return c.JSON(http.StatusOK, out)
}

// ChiefTenant handles GET /v1/houses/:id/chief-tenant.
//
// @Summary      Get the active chief tenant assignment for a house
// @Tags         houses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "House id"
// @Success      200  {object}  assignmentResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/houses/{id}/chief-tenant [get]
func (h *HouseHandler) ChiefTenant(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	assignment, err := h.service.ActiveChiefTenant(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAssignmentResponse(*assignment))
}

// queryInt parses an optional integer query parameter, returning 0 when
// absent or malformed so the service applies its defaults.
func queryInt(c echo.Context, name string) int {
	v := c.QueryParam(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
