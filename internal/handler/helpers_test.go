package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spiceshop/internal/config"
	"spiceshop/internal/domain/model"
	"spiceshop/internal/repository"
	"spiceshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// レスポンス確認用
// =====================

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

// =====================
// helper
// =====================

var testCfg = config.Config{JWTSecret: "test-secret", AccessTokenTTL: time.Hour, AdminUsername: "admin"}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body interface{}, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, o := range opts {
		o(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func withBearer(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func withCookie(c *http.Cookie) func(*http.Request) {
	return func(r *http.Request) {
		r.AddCookie(c)
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func mustToken(t *testing.T, userID, username string, tv int) string {
	t.Helper()
	raw, _, err := usecase.NewJWTIssuer(testCfg.JWTSecret, time.Hour).Issue(userID, username, tv, time.Now())
	require.NoError(t, err)
	return raw
}

// =====================
// AdminUserRepository モック（TokenVersionGuard 用）
// =====================

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *model.AdminUser) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.AdminUser)
	return u, args.Error(1)
}

func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.AdminUser)
	return u, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *model.AdminUser) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repository.AdminUserRepository = (*MockUserRepo)(nil)

// 有効な管理者 u1 (tv=0) を返す
func adminRepo() *MockUserRepo {
	users := new(MockUserRepo)
	users.On("FindByID", mock.Anything, "u1").Return(&model.AdminUser{ID: "u1", Username: "admin"}, nil)
	users.On("FindByID", mock.Anything, "u2").Return(&model.AdminUser{ID: "u2", Username: "staff"}, nil)
	return users
}
