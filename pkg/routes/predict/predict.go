package predict

import (
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/aster/pkg/features"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/prediction"
)

var validate = validator.New()

// Register registers prediction routes. The static models/status path is
// registered alongside the parameterized paths; echo matches static segments
// first.
func Register(g *echo.Group) {
	g.GET("/models/status", GetModelsStatus)
	g.GET("/:mission/:target_id", Predict)
	g.POST("/:mission/:target_id/custom", PredictCustom)
}

// Predict classifies a catalog target with its mission's model
func Predict(c echo.Context) error {
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

	result, err := service.Predict(ctx, mission, targetID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// PredictCustom classifies caller-supplied feature values
func PredictCustom(c echo.Context) error {
	ctx := c.Request().Context()

	mission, err := models.ParseMission(c.Param("mission"))
	if err != nil {
		return err
	}
	targetID := c.Param("target_id")

	var req models.CustomPredictRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "features are required")
	}
	for name := range req.Features {
		if !features.IsCanonical(name) {
			return httperror.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("unknown feature %q; valid features: %v", name, features.Vocabulary))
		}
	}

	ctx, service, err := ectoinject.GetContext[*prediction.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := service.PredictCustom(ctx, mission, targetID, req.Features)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// GetModelsStatus reports per-mission model availability
func GetModelsStatus(c echo.Context) error {
	ctx := c.Request().Context()

	ctx, service, err := ectoinject.GetContext[*prediction.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	return c.JSON(http.StatusOK, service.Status(ctx))
}
