package middleware

import (
	"net/http"
	"strings"

	"spiceshop/internal/config"
	"spiceshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // string
	CtxUsernameKey     = "username"      // string
	CtxTokenVersionKey = "token_version" // int
	CtxSessionKey      = "session"       // usecase.Session
)

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	issuer := usecase.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken, ok := BearerToken(c.Request())
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//署名・アルゴリズム・期限を検証する
			claims, err := issuer.Parse(rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.Subject)
			c.Set(CtxUsernameKey, claims.Username)
			c.Set(CtxTokenVersionKey, claims.TokenVersion)
			c.Set(CtxSessionKey, usecase.Session{
				UserID:       claims.Subject,
				Username:     claims.Username,
				TokenVersion: claims.TokenVersion,
				ExpiresAt:    claims.ExpiresAt.Time,
			})

			return next(c)
		}
	}
}

// BearerToken は Authorization: Bearer <token> から token を抜く。
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
