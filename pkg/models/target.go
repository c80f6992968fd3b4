package models

// MissionTarget is one catalog record for a (mission, catalog id) pair.
// Created by a catalog adapter and never mutated afterwards.
type MissionTarget struct {
	Mission     Mission        `json:"mission"`
	CatalogID   int64          `json:"catalog_id"`
	RA          *float64       `json:"ra,omitempty"`
	Dec         *float64       `json:"dec,omitempty"`
	Disposition string         `json:"disposition,omitempty"` // mission-specific vocabulary
	Raw         map[string]any `json:"raw,omitempty"`
}

// FeatureSet maps canonical feature names to values. A nil value means the
// feature is absent from the mission's catalog row; absent features are kept
// in the map (and serialized as null) rather than dropped or zeroed, so the
// model layer can apply its own imputation.
type FeatureSet map[string]*float64

// Available counts the features that carry a value.
func (fs FeatureSet) Available() int {
	n := 0
	for _, v := range fs {
		if v != nil {
			n++
		}
	}
	return n
}

// ResolutionStatus tags the outcome of a cross-mission resolution.
type ResolutionStatus string

const (
	ResolutionSuccess  ResolutionStatus = "success"
	ResolutionPartial  ResolutionStatus = "partial"
	ResolutionNotFound ResolutionStatus = "not_found"
)

// ResolutionResult aggregates per-mission lookups for one input name.
// Constructed fresh per request; never mutated after return.
type ResolutionResult struct {
	Input          string                     `json:"input"`
	Targets        map[Mission]*MissionTarget `json:"targets"`
	PrimaryMission Mission                    `json:"primary_mission,omitempty"`
	Status         ResolutionStatus           `json:"status"`
}

// PredictionResult packages one classifier invocation.
type PredictionResult struct {
	Mission        Mission    `json:"mission"`
	TargetID       string     `json:"target_id"`
	Probability    float64    `json:"probability"`
	Threshold      float64    `json:"threshold"`
	Classification string     `json:"classification"`
	UsedFeatures   FeatureSet `json:"used_features"`
	Custom         bool       `json:"custom_prediction,omitempty"`
}

// Classification labels.
const (
	ClassConfirmed     = "CONFIRMED"
	ClassFalsePositive = "FALSE_POSITIVE"
)
