package handler

import (
	"context"
	"net/http"

	"spiceshop/internal/config"
	"spiceshop/internal/middleware"
	"spiceshop/internal/repository"
	"spiceshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Identity Provider の入口
type Identity interface {
	SignIn(ctx context.Context, username, password string) (usecase.SignInOutput, error)
	SignOut(ctx context.Context, s usecase.Session) error
	CurrentSession(ctx context.Context, rawToken string) (usecase.Session, bool, error)
	IsAdmin(s usecase.Session) bool
}

type AuthHandler struct {
	uc Identity
}

func NewAuthHandler(uc Identity) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GET /auth/session のレスポンス。未ログインなら session は null。
type sessionResponse struct {
	Session *usecase.Session `json:"session"`
	IsAdmin bool             `json:"is_admin"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.AdminUserRepository) {
	e.POST("/auth/login", h.login)
	e.GET("/auth/session", h.session)

	// ログアウトはトークンが今も有効なときだけ
	e.POST("/auth/logout", h.logout,
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
	)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SignIn(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) logout(c echo.Context) error {
	s, ok := getSessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.SignOut(c.Request().Context(), s); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

// トークンが無い・無効でもエラーにはしない（session: null）
func (h *AuthHandler) session(c echo.Context) error {
	raw, _ := middleware.BearerToken(c.Request())

	s, ok, err := h.uc.CurrentSession(c.Request().Context(), raw)
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return c.JSON(http.StatusOK, sessionResponse{})
	}
	return c.JSON(http.StatusOK, sessionResponse{Session: &s, IsAdmin: h.uc.IsAdmin(s)})
}
