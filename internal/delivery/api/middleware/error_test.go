package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"solar/internal/delivery/api/response"
	"solar/internal/delivery/api/validator"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slugRequest struct {
	Slug string `json:"slug" validate:"required,slug"`
}

func handle(t *testing.T, err error) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError(err, c)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return rec, env
}

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails bool
	}{
		{
			name:        "wrapped app error keeps its code and details",
			err:         errors.Wrap(domainerrors.ErrCategoryNotFound.WithDetails("slug panels"), "lookup"),
			wantStatus:  http.StatusNotFound,
			wantCode:    domainerrors.ErrCategoryNotFound.ErrorCode(),
			wantDetails: true,
		},
		{
			name:       "forbidden hides details",
			err:        domainerrors.ErrForbidden.WithDetails("role viewer"),
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "echo http error",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "METHOD_NOT_ALLOWED",
		},
		{
			name:       "echo not found",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "unknown error is internal",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := handle(t, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, env.StatusCode)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Nil(t, env.Data)
			if tt.wantDetails {
				assert.NotNil(t, env.Error.Details)
			} else {
				assert.Nil(t, env.Error.Details)
			}
		})
	}
}

func TestHandleHTTPErrorValidation(t *testing.T) {
	err := validator.New().Validate(&slugRequest{Slug: "Not A Slug"})
	require.Error(t, err)

	rec, env := handle(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), env.Error.Code)

	fields, ok := env.Error.Details.([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "slug", fields[0].(map[string]any)["field"])
}

func TestHandleHTTPErrorCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	NewErrorMiddleware(slog.Default()).HandleHTTPError(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
