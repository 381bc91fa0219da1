package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ogurasousui/company-api/internal/core/employee"
	"github.com/ogurasousui/company-api/internal/platform/logger"
)

const (
	msgUnexpected   = "An unexpected error occurred. Please try again later."
	msgInvalidBody  = "Employee data is required and must be valid."
	msgIDMismatch   = "Mismatch between route ID and body ID."
	msgInvalidID    = "Invalid employee ID."
	msgInvalidDate  = "hire_date must be a valid date in YYYY-MM-DD format."
	msgInvalidPatch = "Invalid JSON Patch document."
)

func toHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case employee.IsValidationError(err):
		return http.StatusBadRequest
	case employee.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, employee.ErrIDMismatch):
		return msgIDMismatch
	case errors.Is(err, employee.ErrInvalidPatch):
		return msgInvalidPatch
	case errors.Is(err, employee.ErrInvalidID):
		return msgInvalidID
	case errors.Is(err, employee.ErrInvalidHireDate):
		return msgInvalidDate
	default:
		return msgInvalidBody
	}
}

// respondError はエラーを HTTP レスポンスに変換します。内部エラーの詳細はログにのみ出力します。
func respondError(c echo.Context, action string, err error, notFoundMessage string) error {
	ctx := c.Request().Context()
	status := toHTTPStatus(err)

	switch status {
	case http.StatusBadRequest:
		logger.WarnLog(ctx, "%s rejected: %v", action, err)
		return c.JSON(status, messageResponse{Message: validationMessage(err), Errors: errorDetails(err)})
	case http.StatusNotFound:
		logger.WarnLog(ctx, "%s: %v", action, err)
		return c.JSON(status, messageResponse{Message: notFoundMessage})
	default:
		logger.ErrorLog(ctx, "error occurred while executing %s", err, action)
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: msgUnexpected})
	}
}

func errorDetails(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		details := make([]string, 0, len(joined.Unwrap()))
		for _, e := range joined.Unwrap() {
			details = append(details, e.Error())
		}
		return details
	}
	return []string{err.Error()}
}
