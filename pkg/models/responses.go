package models

// FeaturesResponse is the body for GET /features/{mission}/{target_id}.
type FeaturesResponse struct {
	Mission           Mission    `json:"mission"`
	TargetID          string     `json:"target_id"`
	Features          FeatureSet `json:"features"`
	FeatureCount      int        `json:"feature_count"`
	AvailableFeatures int        `json:"available_features"`
}

// CustomPredictRequest is the body for POST /predict/{mission}/{target_id}/custom.
type CustomPredictRequest struct {
	Features map[string]float64 `json:"features" validate:"required,min=1"`
}

// ModelStatus describes one mission's classifier availability.
type ModelStatus struct {
	Available bool    `json:"available"`
	Threshold float64 `json:"threshold,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// ModelsStatusResponse is the body for GET /predict/models/status.
type ModelsStatusResponse struct {
	AvailableMissions []Mission               `json:"available_missions"`
	Models            map[Mission]ModelStatus `json:"models"`
	TotalAvailable    int                     `json:"total_available"`
}

// Lightcurve is the time-series summary returned by the lightcurve endpoint.
type Lightcurve struct {
	Mission    Mission        `json:"mission"`
	TargetID   int64          `json:"target_id"`
	DataPoints int            `json:"data_points"`
	TimeRange  TimeRange      `json:"time_range"`
	FluxStats  FluxStats      `json:"flux_stats"`
	TimeSeries TimeSeries     `json:"time_series"`
	Segment    map[string]any `json:"segment,omitempty"` // sector/quarter/campaign metadata
}

type TimeRange struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

type FluxStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SectorsResponse lists the observing segments with data for a target.
type SectorsResponse struct {
	Mission          Mission         `json:"mission"`
	TargetID         int64           `json:"target_id"`
	AvailableSectors []any           `json:"available_sectors,omitempty"`
	Coordinates      *SkyCoordinates `json:"coordinates,omitempty"`
	Note             string          `json:"note,omitempty"`
}

type SkyCoordinates struct {
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`
}

type TimeSeries struct {
	Time           []float64 `json:"time"`
	Flux           []float64 `json:"flux"`
	FluxNormalized []float64 `json:"flux_normalized"`
}
