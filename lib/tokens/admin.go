package tokens

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminTokenMiddleware gates the back-office endpoints on a static bearer
// token. With no token configured the middleware is a pass-through; callers
// only mount the admin routes when ADMIN_TOKEN is set.
func AdminTokenMiddleware(adminToken string) echo.MiddlewareFunc {
	if adminToken == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return middleware.KeyAuth(func(key string, c echo.Context) (bool, error) {
		return subtle.ConstantTimeCompare([]byte(key), []byte(adminToken)) == 1, nil
	})
}
