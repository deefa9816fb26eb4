package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/backend/internal/apperrors"
)

// httpError maps the application error taxonomy to HTTP status codes.
// Integrity violations surface as 500 so store corruption is never
// silently masked.
func httpError(err error) error {
	switch {
	case apperrors.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperrors.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case apperrors.IsForbidden(err):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case apperrors.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// pagination parses limit/offset query parameters. Malformed or missing
// values fall back to the defaults applied by the feed composer.
func pagination(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
