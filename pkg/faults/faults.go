// Package faults defines the error kinds surfaced by the resolution and
// prediction pipeline. Adapters and services wrap their failures into one of
// these before returning; the HTTP layer maps them onto status codes.
package faults

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound means the identifier or target is absent from a catalog.
	// Expected and user-facing.
	ErrNotFound = errors.New("target not found")

	// ErrInvalidMission means the mission literal is outside {TESS, KEPLER, K2}.
	ErrInvalidMission = errors.New("invalid mission")

	// ErrModelUnavailable means no classifier is loaded for the mission.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrUpstreamUnavailable means the archive client failed. Transient;
	// surfaced as 500 and not retried here.
	ErrUpstreamUnavailable = errors.New("archive unavailable")
)

// NotFoundf wraps ErrNotFound with detail.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// InvalidMissionf wraps ErrInvalidMission with detail.
func InvalidMissionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMission, fmt.Sprintf(format, args...))
}

// ModelUnavailablef wraps ErrModelUnavailable with detail.
func ModelUnavailablef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrModelUnavailable, fmt.Sprintf(format, args...))
}

// Upstreamf wraps ErrUpstreamUnavailable with detail.
func Upstreamf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUpstreamUnavailable, fmt.Sprintf(format, args...))
}

// HTTPStatus maps an error kind to the status code the API contract promises.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidMission):
		return http.StatusBadRequest
	case errors.Is(err, ErrModelUnavailable), errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
