// Package handler holds the echo handlers of the API server.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"cinegraph/internal/delivery/api/response"
	"cinegraph/internal/delivery/api/validator"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HealthCheck reports that the process is serving requests.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses a positive int64 path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid %s", name)
	}

	return id, nil
}

// bindAndValidate decodes the body into req and runs the struct rules. A
// non-nil error means the response has already been written.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, response.BindingError(c, "INVALID_INPUT", "Malformed request body")
	}
	if err := c.Validate(req); err != nil {
		return false, response.ValidationError(c, err)
	}

	return true, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(validator.Date, s)

	return t, errors.WithStack(err)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(validator.Date)
}

func messageOK(c echo.Context, message string) error {
	return response.Success(c, http.StatusOK, map[string]string{"message": message})
}
