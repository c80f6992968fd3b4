// Package catalog translates classified identifiers into native catalog
// lookups, one adapter per mission. Adapters own id extraction and their
// mission's disposition vocabulary; they never normalize units or feature
// names, which keeps feature semantics decided in one place.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ramsey-B/aster/pkg/archive"
	"github.com/Ramsey-B/aster/pkg/classifier"
	"github.com/Ramsey-B/aster/pkg/faults"
	"github.com/Ramsey-B/aster/pkg/models"
)

// Adapter looks up one mission's catalog.
type Adapter interface {
	Mission() models.Mission
	// Lookup resolves a candidate into a MissionTarget. Absent targets and
	// unreachable archives both surface as ErrNotFound; this layer does not
	// distinguish them and does not retry.
	Lookup(ctx context.Context, cand classifier.Candidate) (*models.MissionTarget, error)
}

// ForMission returns the adapter for a mission from a fixed set.
func ForMission(adapters []Adapter, m models.Mission) (Adapter, error) {
	for _, a := range adapters {
		if a.Mission() == m {
			return a, nil
		}
	}
	return nil, faults.InvalidMissionf("no catalog adapter for %q", m)
}

// queryOne runs a TAP query and returns the first row, mapping empty result
// sets and archive failures to ErrNotFound per the adapter contract.
func queryOne(ctx context.Context, client archive.Client, query string) (archive.Row, error) {
	rows, err := client.QueryCatalog(ctx, query)
	if err != nil {
		if errors.Is(err, faults.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", faults.ErrNotFound, err)
	}
	if len(rows) == 0 {
		return nil, faults.ErrNotFound
	}
	return rows[0], nil
}

// numericField coerces a raw catalog value to int64. TAP JSON delivers
// numbers as float64.
func numericField(row archive.Row, column string) (int64, bool) {
	switch v := row[column].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func floatField(row archive.Row, column string) *float64 {
	switch v := row[column].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &f
		}
	}
	return nil
}

func stringField(row archive.Row, column string) string {
	if s, ok := row[column].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// quoteTAP escapes a string literal for an ADQL query.
func quoteTAP(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
