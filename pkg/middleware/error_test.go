package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/aster/pkg/faults"
)

func render(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	Error(logger)(err, c)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestError_FaultMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", faults.NotFoundf("no target 999"), http.StatusNotFound},
		{"invalid mission", faults.InvalidMissionf("JWST"), http.StatusBadRequest},
		{"model unavailable", faults.ModelUnavailablef("no classifier loaded"), http.StatusInternalServerError},
		{"upstream unavailable", faults.Upstreamf("archive timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := render(t, tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.code, body.StatusCode)
			assert.Equal(t, tt.err.Error(), body.Detail)
		})
	}
}

func TestError_HTTPError(t *testing.T) {
	code, body := render(t, httperror.NewHTTPError(http.StatusBadRequest, "features are required"))

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "features are required", body.Detail)
	assert.Equal(t, http.StatusBadRequest, body.StatusCode)
}

func TestError_EchoHTTPError(t *testing.T) {
	code, body := render(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not Found", body.Detail)
}

func TestError_UnknownErrorIs500(t *testing.T) {
	code, body := render(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal Server Error", body.Detail)
	assert.Equal(t, http.StatusInternalServerError, body.StatusCode)
}
