package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// contextに入っているusernameが管理者のものか確認します。
func AdminGuard(adminUsername string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, ok := c.Get(CtxUsernameKey).(string)
			if !ok || username == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if adminUsername == "" || username != adminUsername {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
