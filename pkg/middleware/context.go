package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	ctxkeys "github.com/Ramsey-B/aster/pkg/context"
)

func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			// get request id from header
			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := req.Context()
			ctx = ctxkeys.SetRequestID(ctx, requestID)
			ctx = ctxkeys.SetMethod(ctx, req.Method)
			ctx = ctxkeys.SetRoute(ctx, req.URL.Path)
			ctx = ctxkeys.SetRemoteIP(ctx, c.RealIP())

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
