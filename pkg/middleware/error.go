package middleware

import (
	"errors"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/aster/pkg/faults"
)

// ErrorResponse is the error body the frontend consumes.
type ErrorResponse struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
}

func Error(logger ectologger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		ctx := c.Request().Context()
		logger.WithContext(ctx).WithError(err).Error("api is returning an error")
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		detail := "Internal Server Error"

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				detail = msg
			}
		}

		switch {
		case httperror.IsHTTPError(err):
			httperr := httperror.ToHTTPError(err)
			code = httperror.GetStatusCode(err)
			detail = httperr.Error()
		case errors.Is(err, faults.ErrNotFound),
			errors.Is(err, faults.ErrInvalidMission),
			errors.Is(err, faults.ErrModelUnavailable),
			errors.Is(err, faults.ErrUpstreamUnavailable):
			code = faults.HTTPStatus(err)
			detail = err.Error()
		}

		_ = c.JSON(code, ErrorResponse{
			Detail:     detail,
			StatusCode: code,
		})
	}
}
