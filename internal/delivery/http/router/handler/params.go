package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"backoffice/internal/usecase"
)

const (
	defaultListLimit   = 100
	defaultSearchLimit = 20
)

// listInput parses the shared skip/limit pagination query parameters.
func listInput(c echo.Context) *usecase.ListInput {
	input := &usecase.ListInput{Limit: defaultListLimit}

	if skip, err := strconv.ParseInt(c.QueryParam("skip"), 10, 64); err == nil && skip > 0 {
		input.Skip = skip
	}
	if limit, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64); err == nil && limit > 0 {
		input.Limit = limit
	}

	return input
}

// searchParams parses the q/limit query parameters of search routes.
func searchParams(c echo.Context) (string, int64) {
	term := c.QueryParam("q")

	limit := int64(defaultSearchLimit)
	if parsed, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64); err == nil && parsed > 0 {
		limit = parsed
	}

	return term, limit
}
