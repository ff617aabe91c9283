package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estateops/property-registry/internal/core/ports"
)

// AssignmentHandler handles HTTP requests for chief tenant assignments.
type AssignmentHandler struct {
	service ports.AssignmentService
}

func NewAssignmentHandler(service ports.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

type createAssignmentRequest struct {
	UserID   string `json:"user_id"  validate:"required"`
	HouseID  string `json:"house_id" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

type updateAssignmentRequest struct {
	HouseID  *string `json:"house_id" validate:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

// List handles GET /v1/assignments.
//
// @Summary      List assignments visible to the actor
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool  false  "Active assignments only"
// @Param        page    query     int   false  "Page (1-based)"
// @Param        limit   query     int   false  "Page size (max 100)"
// @Success      200     {object}  listAssignmentsResponse
// @Router       /v1/assignments [get]
func (h *AssignmentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), actor, ports.ListAssignmentsInput{
		ActiveOnly: c.QueryParam("active") == "true",
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListAssignmentsResponse(result))
}

// ListActive handles GET /v1/assignments/active.
//
// @Summary      List active assignments
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listAssignmentsResponse
// @Router       /v1/assignments/active [get]
func (h *AssignmentHandler) ListActive(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), actor, ports.ListAssignmentsInput{
		ActiveOnly: true,
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListAssignmentsResponse(result))
}

// Get handles GET /v1/assignments/:id.
//
// @Summary      Get an assignment
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Assignment id"
// @Success      200  {object}  assignmentResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/assignments/{id} [get]
func (h *AssignmentHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	assignment, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAssignmentResponse(*assignment))
}

// Create handles POST /v1/assignments.
//
// @Summary      Designate a tenant as chief tenant of a house
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAssignmentRequest  true  "Assignment details"
// @Success      201   {object}  assignmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/assignments [post]
func (h *AssignmentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	assignment, err := h.service.Create(c.Request().Context(), actor, ports.CreateAssignmentInput{
		UserID:   req.UserID,
		HouseID:  req.HouseID,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBareAssignmentResponse(assignment))
}

// Update handles PUT /v1/assignments/:id.
//
// @Summary      Update an assignment
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Assignment id"
// @Param        body  body      updateAssignmentRequest  true  "Fields to update"
// @Success      200   {object}  assignmentResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/assignments/{id} [put]
func (h *AssignmentHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	assignment, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateAssignmentInput{
		HouseID:  req.HouseID,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBareAssignmentResponse(assignment))
}

// Activate handles POST /v1/assignments/:id/activate. Activating an
// assignment deactivates any other active assignment on the same house.
//
// @Summary      Activate an assignment
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Assignment id"
// @Success      200  {object}  assignmentResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/assignments/{id}/activate [post]
func (h *AssignmentHandler) Activate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	assignment, err := h.service.Activate(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBareAssignmentResponse(assignment))
}

// Deactivate handles POST /v1/assignments/:id/deactivate.
//
// @Summary      Deactivate an assignment
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Assignment id"
// @Success      200  {object}  assignmentResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/assignments/{id}/deactivate [post]
func (h *AssignmentHandler) Deactivate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	assignment, err := h.service.Deactivate(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBareAssignmentResponse(assignment))
}

// Delete handles DELETE /v1/assignments/:id.
//
// @Summary      Delete an assignment
// @Tags         assignments
// @Security     BearerAuth
// @Param        id  path  string  true  "Assignment id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
