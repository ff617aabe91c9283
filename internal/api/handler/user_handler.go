package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estateops/property-registry/internal/core/ports"
)

// UserHandler handles HTTP requests for user records.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Username  string `json:"username"   validate:"required"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"       validate:"required,oneof=owner tenant admin"`
}

type updateUserRequest struct {
	Email     *string `json:"email"      validate:"omitempty,email"`
	Username  *string `json:"username"   validate:"omitempty,min=1"`
	Password  *string `json:"password"   validate:"omitempty,min=8"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"       validate:"omitempty,oneof=owner tenant admin"`
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role   query     string  false  "Filter by role"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  listUsersResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), actor, ports.ListUsersInput{
		Role:  c.QueryParam("role"),
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	items := make([]userResponse, len(result.Items))
	for i, u := range result.Items {
		items[i] = toUserResponse(u)
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Data:       items,
		Pagination: toPaginationResponse(result.Page),
	})
}

// ListOwners handles GET /v1/users/owners.
//
// @Summary      List property owners
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users/owners [get]
func (h *UserHandler) ListOwners(c echo.Context) error {
	return h.listByRole(c, "owner")
}

// ListTenants handles GET /v1/users/tenants. Owners use this to pick chief
// tenant candidates.
//
// @Summary      List tenants
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users/tenants [get]
func (h *UserHandler) ListTenants(c echo.Context) error {
	return h.listByRole(c, "tenant")
}

func (h *UserHandler) listByRole(c echo.Context, role string) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), actor, ports.ListUsersInput{
		Role:  role,
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	items := make([]userResponse, len(result.Items))
	for i, u := range result.Items {
		items[i] = toUserResponse(u)
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Data:       items,
		Pagination: toPaginationResponse(result.Page),
	})
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user with owned houses and assignment
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userDetailResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserDetailResponse(detail))
}

// Me handles GET /v1/users/me, a convenience alias for the actor's own
// detail view.
//
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userDetailResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), actor, actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserDetailResponse(detail))
}

// Create handles POST /v1/users. Admin only.
//
// @Summary      Create a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Create(c.Request().Context(), actor, ports.CreateUserInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update handles PUT /v1/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateUserInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /v1/users/:id. Admin only; cascades to owned
// houses and their dependents.
//
// @Summary      Delete a user and everything they own
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Properties handles GET /v1/users/:id/properties.
//
// @Summary      List houses owned by a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {array}   houseSummaryResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id}/properties [get]
func (h *UserHandler) Properties(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	houses, err := h.service.Properties(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]houseSummaryResponse, len(houses))
	for i, s := range houses {
		out[i] = toHouseSummaryResponse(s)
	}
	return c.JSON(http.StatusOK, out)
}
