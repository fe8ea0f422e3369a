// Package response writes the uniform JSON envelope of the API.
package response

import (
	"net/http"

	domainerrors "solar/internal/domain/errors"
	"solar/internal/errors"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every API response.
type Envelope struct {
	StatusCode int        `json:"statusCode"`
	Message    string     `json:"message"`
	Data       any        `json:"data,omitempty"`
	Error      *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// Success returns a successful response with the standard status text as message.
func Success(c echo.Context, statusCode int, data any) error {
	return SuccessWithMessage(c, statusCode, http.StatusText(statusCode), data)
}

// SuccessWithMessage returns a successful response with a custom message.
func SuccessWithMessage(c echo.Context, statusCode int, message string, data any) error {
	return c.JSON(statusCode, Envelope{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// Created returns a 201 response
func Created(c echo.Context, data any) error {
	return Success(c, http.StatusCreated, data)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= http.StatusInternalServerError ||
		statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}
	if s, ok := details.(string); ok && s == "" {
		details = nil
	}

	return c.JSON(statusCode, Envelope{
		StatusCode: statusCode,
		Message:    message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, errorCode string, message string, details any) error {
	return Error(c, http.StatusBadRequest, errorCode, message, details)
}

// Unauthorized returns a 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, nil)
}

// Forbidden returns a 403 error
func Forbidden(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusForbidden, errorCode, message, nil)
}

// NotFound returns a 404 error
func NotFound(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message, nil)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}

// AppError writes an application error.
func AppError(c echo.Context, appErr domainerrors.AppError) error {
	return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
}

// HandleAppError writes application errors. Anything else is returned so the
// central error handler logs it and answers 500.
func HandleAppError(c echo.Context, err error) error {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		return AppError(c, appErr)
	}

	return errors.WithStack(err)
}
