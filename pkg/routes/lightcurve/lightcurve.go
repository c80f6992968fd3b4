package lightcurve

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/aster/pkg/archive"
	"github.com/Ramsey-B/aster/pkg/cache"
	"github.com/Ramsey-B/aster/pkg/models"
)

// Register registers lightcurve routes
func Register(g *echo.Group) {
	g.GET("/:mission/:target_id", GetLightcurve)
	g.GET("/:mission/:target_id/sectors", GetSectors)
}

// GetLightcurve returns the summarized time series for a catalog target
func GetLightcurve(c echo.Context) error {
	ctx := c.Request().Context()

	mission, err := models.ParseMission(c.Param("mission"))
	if err != nil {
		return err
	}

	targetID, err := strconv.ParseInt(c.Param("target_id"), 10, 64)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "target_id must be a numeric catalog id")
	}

	opts, err := segmentOptions(c)
	if err != nil {
		return err
	}

	ctx, client, err := ectoinject.GetContext[archive.Client](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}
	ctx, store, err := ectoinject.GetContext[*cache.Cache](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	key := cache.Key("lightcurve", string(mission), c.Param("target_id"),
		strconv.Itoa(opts.Sector), strconv.Itoa(opts.Quarter), strconv.Itoa(opts.Campaign))
	lc, err := cache.GetOrCompute(ctx, store, key, cache.TTLLightcurve, func(ctx context.Context) (*models.Lightcurve, error) {
		return client.QueryLightcurve(ctx, mission, targetID, opts)
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, lc)
}

// GetSectors lists the observing segments available for a catalog target
func GetSectors(c echo.Context) error {
	ctx := c.Request().Context()

	mission, err := models.ParseMission(c.Param("mission"))
	if err != nil {
		return err
	}

	targetID, err := strconv.ParseInt(c.Param("target_id"), 10, 64)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "target_id must be a numeric catalog id")
	}

	ctx, client, err := ectoinject.GetContext[archive.Client](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	sectors, err := client.QuerySectors(ctx, mission, targetID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sectors)
}

// segmentOptions reads the optional observing-segment query params.
func segmentOptions(c echo.Context) (archive.LightcurveOptions, error) {
	var opts archive.LightcurveOptions
	for param, dst := range map[string]*int{
		"sector":   &opts.Sector,
		"quarter":  &opts.Quarter,
		"campaign": &opts.Campaign,
	} {
		raw := c.QueryParam(param)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return opts, httperror.NewHTTPError(http.StatusBadRequest, param+" must be a non-negative integer")
		}
		*dst = v
	}
	return opts, nil
}
