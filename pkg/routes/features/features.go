package features

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/prediction"
)

// Register registers feature routes
func Register(g *echo.Group) {
	g.GET("/:mission/:target_id", GetFeatures)
}

// GetFeatures returns the normalized feature set for a catalog target
func GetFeatures(c echo.Context) error {
	ctx := c.Request().Context()

	mission, err := models.ParseMission(c.Param("mission"))
	if err != nil {
		return err
	}
	targetID := c.Param("target_id")

	ctx, service, err := ectoinject.GetContext[*prediction.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	fs, err := service.Features(ctx, mission, targetID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &models.FeaturesResponse{
		Mission:           mission,
		TargetID:          targetID,
		Features:          fs,
		FeatureCount:      len(fs),
		AvailableFeatures: fs.Available(),
	})
}
