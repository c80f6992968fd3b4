package resolve

import (
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/aster/pkg/resolution"
)

// Register registers resolution routes
func Register(g *echo.Group) {
	g.GET("/:identifier", Resolve)
}

// Resolve resolves a raw identifier across all mission catalogs
func Resolve(c echo.Context) error {
	ctx := c.Request().Context()

	identifier := strings.TrimSpace(c.Param("identifier"))
	if identifier == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "identifier is required")
	}

	ctx, aggregator, err := ectoinject.GetContext[*resolution.Aggregator](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	// A resolution with zero hits is still a successful call; the status
	// field carries not_found rather than an error response.
	result, err := aggregator.Resolve(ctx, identifier)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
