package handler

import (
	"net/http"

	"spiceshop/internal/middleware"
	"spiceshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse は { message: string } の形。
type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// AuthJWT が入れたセッションを取り出す
func getSessionFromContext(c echo.Context) (usecase.Session, bool) {
	s, ok := c.Get(middleware.CtxSessionKey).(usecase.Session)
	if !ok || s.UserID == "" || s.Username == "" {
		return usecase.Session{}, false
	}
	return s, true
}

// 監査ログに残す操作者（username）
func getActorFromContext(c echo.Context) (string, bool) {
	s, ok := getSessionFromContext(c)
	if !ok {
		return "", false
	}
	return s.Username, true
}
