package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/aster/pkg/faults"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/tracing"
)

// ModelClient invokes the mission classifiers. Feature imputation for missing
// values happens inside the model service, never on this side.
type ModelClient interface {
	// Predict returns the positive-class probability for the feature set.
	Predict(ctx context.Context, mission models.Mission, features models.FeatureSet) (float64, error)
	// Available reports whether a classifier is loaded for the mission.
	Available(ctx context.Context, mission models.Mission) error
}

// HTTPModelClient calls the model scoring service over HTTP.
type HTTPModelClient struct {
	baseURL string
	client  *http.Client
	logger  ectologger.Logger
}

// NewHTTPModelClient creates a model client. An empty baseURL is a valid
// deployment state in which every mission reports ModelUnavailable.
func NewHTTPModelClient(baseURL string, timeout time.Duration, logger ectologger.Logger) *HTTPModelClient {
	return &HTTPModelClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *HTTPModelClient) Predict(ctx context.Context, mission models.Mission, features models.FeatureSet) (float64, error) {
	ctx, span := tracing.StartSpan(ctx, "prediction.HTTPModelClient.Predict")
	defer span.End()

	if c.baseURL == "" {
		return 0, faults.ModelUnavailablef("no model service configured")
	}

	payload, err := json.Marshal(map[string]any{"features": features})
	if err != nil {
		return 0, fmt.Errorf("marshaling features: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s/predict", c.baseURL, mission)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Errorf("model service call failed for %s", mission)
		return 0, faults.Upstreamf("model service call failed: %v", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusServiceUnavailable:
		return 0, faults.ModelUnavailablef("no classifier loaded for %s", mission)
	default:
		return 0, faults.Upstreamf("model service returned status %d", resp.StatusCode)
	}

	var body struct {
		Probability float64 `json:"probability"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, faults.Upstreamf("decoding model response: %v", err)
	}
	if body.Probability < 0 || body.Probability > 1 {
		return 0, faults.Upstreamf("model returned probability %f outside [0,1]", body.Probability)
	}

	return body.Probability, nil
}

func (c *HTTPModelClient) Available(ctx context.Context, mission models.Mission) error {
	ctx, span := tracing.StartSpan(ctx, "prediction.HTTPModelClient.Available")
	defer span.End()

	if c.baseURL == "" {
		return faults.ModelUnavailablef("no model service configured")
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, mission)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return faults.Upstreamf("model service call failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return faults.ModelUnavailablef("no classifier loaded for %s", mission)
	}
	return nil
}
