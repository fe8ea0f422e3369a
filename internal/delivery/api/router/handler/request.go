// Package handler contains the HTTP handlers of the /api surface.
package handler

import (
	"strconv"
	"strings"

	deliverycontext "solar/internal/delivery/context"
	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("request body is not valid JSON for this endpoint")
	}

	return c.Validate(req)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	return parseID(c.Param("id"), "id")
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails(field + " must be a valid id")
	}

	return id, nil
}

// listParams reads skip, limit and search (or q) from the query string.
func listParams(c echo.Context) (repository.ListParams, error) {
	var params repository.ListParams

	err := echo.QueryParamsBinder(c).
		Int("skip", &params.Skip).
		Int("limit", &params.Limit).
		String("search", &params.Search).
		BindError()
	if err != nil {
		return params, domainerrors.ErrValidationFailed.WithDetails("skip and limit must be integers")
	}

	if params.Search == "" {
		params.Search = c.QueryParam("q")
	}
	params.Search = strings.TrimSpace(params.Search)

	return params, nil
}

func queryBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be true or false")
	}

	return &value, nil
}

func queryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := parseID(raw, name)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func queryDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be a number")
	}

	return &value, nil
}

// currentSession returns the signed-in identity; routes using it sit behind
// Authenticate, so a miss is a 401.
func currentSession(c echo.Context) (*entity.SessionData, error) {
	session, ok := deliverycontext.GetSession(c)
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	return session, nil
}
