package echoapi

import (
	"github.com/labstack/echo/v4"
)

// roleMiddleware gates a route on an exact role set. An empty set
// admits any authenticated user.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if contextHasAnyRole(ctx, roles) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
