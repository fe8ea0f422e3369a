package handler

import (
	"log/slog"
	"net/http"

	"solar/internal/delivery/api/response"
	"solar/internal/domain/repository"
	"solar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	RoleUC usecase.RoleUsecase
	Logger *slog.Logger
}

// UserHandler serves account and role administration.
type UserHandler struct {
	userUC usecase.UserUsecase
	roleUC usecase.RoleUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		roleUC: params.RoleUC,
		logger: params.Logger,
	}
}

// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param search query string false "Name or email contains"
// @Param role query string false "Role name"
// @Param isActive query bool false "Active flag"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.User]}
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.userUC.List(c.Request().Context(), repository.UserFilter{
		ListParams: params,
		Role:       c.QueryParam("role"),
		IsActive:   isActive,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetUser godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} response.Envelope{data=entity.User}
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param body body usecase.CreateUserInput true "Account"
// @Success 201 {object} response.Envelope{data=entity.User}
// @Failure 400 {object} response.Envelope "Unknown role or invalid fields"
// @Failure 409 {object} response.Envelope "Email is already registered"
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var input usecase.CreateUserInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param body body usecase.UpdateUserInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.User}
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateUserInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags Users
// @Param id path string true "User id"
// @Success 200 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.userUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "User deleted", nil)
}

// ListRoles godoc
// @Summary List roles
// @Tags Roles
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.Role]}
// @Router /roles [get]
func (h *UserHandler) ListRoles(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.roleUC.List(c.Request().Context(), params)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetRole godoc
// @Summary Get a role
// @Tags Roles
// @Produce json
// @Param id path string true "Role id"
// @Success 200 {object} response.Envelope{data=entity.Role}
// @Router /roles/{id} [get]
func (h *UserHandler) GetRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	role, err := h.roleUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, role)
}

// CreateRole godoc
// @Summary Create a role
// @Description Adds a permission profile; the permission store is reloaded.
// @Tags Roles
// @Accept json
// @Produce json
// @Param body body usecase.RoleInput true "Role"
// @Success 201 {object} response.Envelope{data=entity.Role}
// @Failure 409 {object} response.Envelope "Role name is already in use"
// @Router /roles [post]
func (h *UserHandler) CreateRole(c echo.Context) error {
	var input usecase.RoleInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	role, err := h.roleUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, role)
}

// UpdateRole godoc
// @Summary Update a role
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path string true "Role id"
// @Param body body usecase.UpdateRoleInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.Role}
// @Router /roles/{id} [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateRoleInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	role, err := h.roleUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, role)
}

// DeleteRole godoc
// @Summary Delete a role
// @Description Built-in roles and roles still assigned to users cannot be deleted.
// @Tags Roles
// @Param id path string true "Role id"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /roles/{id} [delete]
func (h *UserHandler) DeleteRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.roleUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Role deleted", nil)
}
