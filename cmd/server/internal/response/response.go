package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/club-api/internal/types"
)

var (
	InternalServerError = echo.NewHTTPError(
		http.StatusInternalServerError,
		types.StringError("something went wrong"),
	)
	NotFoundError = echo.NewHTTPError(http.StatusNotFound, types.StringError("not found"))
	ConflictError = echo.NewHTTPError(
		http.StatusConflict,
		types.StringError("submission is final and accepts no further edits"),
	)
)
