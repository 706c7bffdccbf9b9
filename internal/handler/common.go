// Package handler contains the HTTP handlers for rooms, responsibles,
// reservations, finalizations and history entries.  Handlers bind and
// validate input, call the repositories, and translate sentinel errors
// into HTTP responses: 404 for missing entities, 409 for room
// double-booking, 422 for field validation failures with a per-field
// message map, 500 for storage errors (logged with context, surfaced
// generically).
package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage    = 1
	defaultPerPage = 50
)

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// paginate interprets the page/per_page query values, falling back to
// the defaults when a value is missing or not a positive integer.
func paginate(pageStr, perPageStr string) (page, perPage int) {
	page = defaultPage
	if n, err := strconv.Atoi(pageStr); err == nil && n > 0 {
		page = n
	}
	perPage = defaultPerPage
	if n, err := strconv.Atoi(perPageStr); err == nil && n > 0 {
		perPage = n
	}
	return page, perPage
}

// pageParams reads pagination from the request query.
func pageParams(c echo.Context) (page, perPage int) {
	return paginate(c.QueryParam("page"), c.QueryParam("per_page"))
}

// invalidData writes the 422 response shape shared by every endpoint:
// an aggregate of all failing fields, never just the first.
func invalidData(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{
		"error":   "invalid data",
		"details": details,
	})
}

// storageError logs the underlying failure with context and answers
// with an opaque 500.  Internal detail never reaches the client.
func storageError(c echo.Context, op string, err error) error {
	log.Printf("%s: %v", op, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
