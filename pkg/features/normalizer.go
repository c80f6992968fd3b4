// Package features maps mission-specific catalog columns into the canonical
// feature vocabulary the prediction models consume. Column maps are fixed
// tables; unit conversions happen here and nowhere else. A canonical feature
// a mission's row does not carry stays in the output as an explicit missing
// value, never a zero.
package features

import (
	"strconv"
	"strings"

	"github.com/Ramsey-B/aster/pkg/models"
)

// Canonical feature names, in model input order.
const (
	OrbitalPeriod   = "orbital_period"
	TransitDuration = "transit_duration" // hours
	TransitDepth    = "transit_depth"
	PlanetRadius    = "planet_radius"
	InsolationFlux  = "insolation_flux"
	EquilibriumTemp = "equilibrium_temp"
	StellarTeff     = "stellar_teff"
	StellarLogg     = "stellar_logg"
	StellarRadius   = "stellar_radius"
	Magnitude       = "magnitude"
)

// Vocabulary is the fixed canonical feature set.
var Vocabulary = []string{
	OrbitalPeriod,
	TransitDuration,
	TransitDepth,
	PlanetRadius,
	InsolationFlux,
	EquilibriumTemp,
	StellarTeff,
	StellarLogg,
	StellarRadius,
	Magnitude,
}

// IsCanonical reports whether name belongs to the vocabulary.
func IsCanonical(name string) bool {
	for _, v := range Vocabulary {
		if v == name {
			return true
		}
	}
	return false
}

// source describes where one canonical feature comes from in a mission's row.
// Columns are tried in order; each carries the factor that converts its native
// unit to the canonical one (1 when units already agree).
type source []column

type column struct {
	name  string
	scale float64
}

func col(names ...string) source {
	src := make(source, len(names))
	for i, n := range names {
		src[i] = column{name: n, scale: 1}
	}
	return src
}

// columnMaps holds the per-mission translation tables. Column names follow
// the archive's toi, cumulative, and k2targets tables.
var columnMaps = map[models.Mission]map[string]source{
	models.MissionTESS: {
		OrbitalPeriod: col("pl_orbper"),
		// pl_trandurh is already hours; pl_trandur is the older days column.
		TransitDuration: {{name: "pl_trandurh", scale: 1}, {name: "pl_trandur", scale: 24}},
		TransitDepth:    col("pl_trandep"),
		PlanetRadius:    col("pl_rade"),
		InsolationFlux:  col("pl_insol"),
		EquilibriumTemp: col("pl_eqt"),
		StellarTeff:     col("st_teff"),
		StellarLogg:     col("st_logg"),
		StellarRadius:   col("st_rad"),
		Magnitude:       col("st_tmag"),
	},
	models.MissionKepler: {
		OrbitalPeriod:   col("koi_period"),
		TransitDuration: col("koi_duration"), // hours
		TransitDepth:    col("koi_depth"),
		PlanetRadius:    col("koi_prad"),
		InsolationFlux:  col("koi_insol"),
		EquilibriumTemp: col("koi_teq"),
		StellarTeff:     col("koi_steff"),
		StellarLogg:     col("koi_slogg"),
		StellarRadius:   col("koi_srad"),
		Magnitude:       col("koi_kepmag"),
	},
	models.MissionK2: {
		OrbitalPeriod:   col("pl_orbper"),
		PlanetRadius:    col("pl_rade"),
		InsolationFlux:  col("pl_insol"),
		EquilibriumTemp: col("pl_eqt"),
		StellarTeff:     col("st_teff"),
		StellarLogg:     col("st_logg"),
		StellarRadius:   col("st_rad"),
		Magnitude:       col("sy_kepmag"),
	},
}

// Normalize maps a MissionTarget's raw row into the canonical vocabulary.
// Every canonical key appears in the result; missing ones carry a nil value.
func Normalize(target *models.MissionTarget) models.FeatureSet {
	mapping := columnMaps[target.Mission]
	fs := make(models.FeatureSet, len(Vocabulary))

	for _, name := range Vocabulary {
		fs[name] = nil
		for _, c := range mapping[name] {
			v, ok := numericValue(target.Raw[c.name])
			if !ok {
				continue
			}
			v *= c.scale
			fs[name] = &v
			break
		}
	}

	return fs
}

// FromMap builds a FeatureSet from caller-supplied values, keeping only
// canonical keys and marking the rest of the vocabulary missing.
func FromMap(values map[string]float64) models.FeatureSet {
	fs := make(models.FeatureSet, len(Vocabulary))
	for _, name := range Vocabulary {
		fs[name] = nil
		if v, ok := values[name]; ok {
			value := v
			fs[name] = &value
		}
	}
	return fs
}

func numericValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Ensure the mission tables never drift outside the vocabulary.
func init() {
	for _, mapping := range columnMaps {
		for name := range mapping {
			if !IsCanonical(name) {
				panic("non-canonical feature in column map: " + name)
			}
		}
	}
}
