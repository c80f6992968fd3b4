// Package archive wraps the NASA Exoplanet Archive TAP endpoint and the MAST
// lightcurve services behind the narrow contract the adapters depend on.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/aster/pkg/faults"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/tracing"
)

// Row is one catalog record as returned by a TAP query.
type Row map[string]any

// LightcurveOptions narrows a lightcurve query to one observing segment.
type LightcurveOptions struct {
	Sector   int // TESS
	Quarter  int // Kepler
	Campaign int // K2
}

// Client is the archive contract the rest of the service depends on.
type Client interface {
	// QueryCatalog runs an ADQL query against the TAP sync endpoint.
	QueryCatalog(ctx context.Context, query string) ([]Row, error)
	// QueryLightcurve fetches the time series for a target.
	QueryLightcurve(ctx context.Context, mission models.Mission, targetID int64, opts LightcurveOptions) (*models.Lightcurve, error)
	// QuerySectors lists the observing segments available for a target.
	QuerySectors(ctx context.Context, mission models.Mission, targetID int64) (*models.SectorsResponse, error)
	// Ping checks archive reachability for health reporting.
	Ping(ctx context.Context) error
}

// Config holds archive client configuration.
type Config struct {
	TAPURL            string
	TESSCutURL        string
	LightcurveURL     string
	Timeout           time.Duration
	LightcurveTimeout time.Duration
	MaxResponseBytes  int64
}

// HTTPClient is the production Client backed by net/http.
type HTTPClient struct {
	cfg      Config
	client   *http.Client
	lcClient *http.Client
	logger   ectologger.Logger
}

// NewHTTPClient creates an archive client.
func NewHTTPClient(cfg Config, logger ectologger.Logger) *HTTPClient {
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = 10 * 1024 * 1024
	}
	return &HTTPClient{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		lcClient: &http.Client{Timeout: cfg.LightcurveTimeout},
		logger:   logger,
	}
}

// QueryCatalog executes a TAP query and decodes the JSON row set.
func (c *HTTPClient) QueryCatalog(ctx context.Context, query string) ([]Row, error) {
	ctx, span := tracing.StartSpan(ctx, "archive.QueryCatalog")
	defer span.End()

	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")

	body, err := c.get(ctx, c.client, c.cfg.TAPURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, faults.Upstreamf("decoding TAP response: %v", err)
	}

	c.logger.WithContext(ctx).Debugf("TAP query returned %d rows", len(rows))
	return rows, nil
}

// QueryLightcurve fetches the target's time series. TESS targets go through
// TESSCut, which is addressed by sky position rather than TIC id; Kepler and
// K2 series come from the MAST lightcurve service.
func (c *HTTPClient) QueryLightcurve(ctx context.Context, mission models.Mission, targetID int64, opts LightcurveOptions) (*models.Lightcurve, error) {
	ctx, span := tracing.StartSpan(ctx, "archive.QueryLightcurve")
	defer span.End()

	var rawURL string
	if mission == models.MissionTESS {
		ra, dec, err := c.coordinates(ctx, targetID)
		if err != nil {
			return nil, err
		}
		params := url.Values{}
		params.Set("ra", strconv.FormatFloat(ra, 'f', -1, 64))
		params.Set("dec", strconv.FormatFloat(dec, 'f', -1, 64))
		if opts.Sector > 0 {
			params.Set("sector", strconv.Itoa(opts.Sector))
		}
		rawURL = c.cfg.TESSCutURL + "/lightcurve?" + params.Encode()
	} else {
		params := url.Values{}
		params.Set("mission", string(mission))
		params.Set("target", strconv.FormatInt(targetID, 10))
		switch {
		case opts.Quarter > 0:
			params.Set("quarter", strconv.Itoa(opts.Quarter))
		case opts.Campaign > 0:
			params.Set("campaign", strconv.Itoa(opts.Campaign))
		}
		rawURL = c.cfg.LightcurveURL + "/lightcurve?" + params.Encode()
	}

	body, err := c.get(ctx, c.lcClient, rawURL)
	if err != nil {
		return nil, err
	}

	var series struct {
		Time    []float64      `json:"time"`
		Flux    []float64      `json:"flux"`
		Segment map[string]any `json:"segment"`
	}
	if err := json.Unmarshal(body, &series); err != nil {
		return nil, faults.Upstreamf("decoding lightcurve response: %v", err)
	}
	if len(series.Time) == 0 || len(series.Time) != len(series.Flux) {
		return nil, faults.NotFoundf("no lightcurve data for %s %d", mission, targetID)
	}

	lc := summarize(mission, targetID, series.Time, series.Flux)
	lc.Segment = series.Segment
	return lc, nil
}

// QuerySectors lists the TESSCut sectors covering a TESS target. Kepler and K2
// data is organized per target rather than per pointing, so those missions get
// a pointer to the lightcurve endpoint instead of a segment list.
func (c *HTTPClient) QuerySectors(ctx context.Context, mission models.Mission, targetID int64) (*models.SectorsResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "archive.QuerySectors")
	defer span.End()

	if mission != models.MissionTESS {
		return &models.SectorsResponse{
			Mission:  mission,
			TargetID: targetID,
			Note:     fmt.Sprintf("use the lightcurve endpoint for %s data", mission),
		}, nil
	}

	ra, dec, err := c.coordinates(ctx, targetID)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("ra", strconv.FormatFloat(ra, 'f', -1, 64))
	params.Set("dec", strconv.FormatFloat(dec, 'f', -1, 64))

	body, err := c.get(ctx, c.client, c.cfg.TESSCutURL+"/sector?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Sectors []any `json:"sectors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, faults.Upstreamf("decoding sector response: %v", err)
	}

	return &models.SectorsResponse{
		Mission:          mission,
		TargetID:         targetID,
		AvailableSectors: payload.Sectors,
		Coordinates:      &models.SkyCoordinates{RA: ra, Dec: dec},
	}, nil
}

// Ping probes the TAP endpoint with a trivial query.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.QueryCatalog(ctx, "select top 1 toi from toi")
	return err
}

// coordinates looks up a TIC target's sky position, which TESSCut requires in
// place of the catalog id.
func (c *HTTPClient) coordinates(ctx context.Context, tic int64) (float64, float64, error) {
	rows, err := c.QueryCatalog(ctx, fmt.Sprintf("select top 1 ra,dec from toi where tid=%d", tic))
	if err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, faults.NotFoundf("no coordinates for TIC %d", tic)
	}

	ra, raOK := rows[0]["ra"].(float64)
	dec, decOK := rows[0]["dec"].(float64)
	if !raOK || !decOK {
		return 0, 0, faults.NotFoundf("no coordinates for TIC %d", tic)
	}
	return ra, dec, nil
}

func (c *HTTPClient) get(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, faults.Upstreamf("building request: %v", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Errorf("archive request failed: %s", rawURL)
		return nil, faults.Upstreamf("archive request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, faults.NotFoundf("archive returned 404")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, faults.Upstreamf("archive returned status %d", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, c.cfg.MaxResponseBytes+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, faults.Upstreamf("reading archive response: %v", err)
	}
	if int64(len(body)) > c.cfg.MaxResponseBytes {
		return nil, faults.Upstreamf("archive response too large: %d bytes", len(body))
	}

	c.logger.WithContext(ctx).Debugf("archive GET %s -> %d (%s)", rawURL, resp.StatusCode, time.Since(start))
	return body, nil
}
