package middleware

import (
	"net/http"

	"spiceshop/internal/session"

	"github.com/labstack/echo/v4"
)

const (
	CartCookieName    = "cart_session"
	CtxCartSessionKey = "cart_session" // *session.Session
)

// CartSession はクッキーのIDからカートを引き当てる。無ければ作ってクッキーを返す。
func CartSession(reg *session.Registry, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if ck, err := c.Cookie(CartCookieName); err == nil {
				id = ck.Value
			}

			s, created := reg.GetOrCreate(id)
			if created || s.ID != id {
				c.SetCookie(&http.Cookie{
					Name:     CartCookieName,
					Value:    s.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxCartSessionKey, s)
			return next(c)
		}
	}
}
