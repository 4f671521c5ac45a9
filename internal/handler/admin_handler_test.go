package handler_test

import (
	"context"
	"net/http"
	"testing"

	"spiceshop/internal/domain/model"
	"spiceshop/internal/domain/money"
	"spiceshop/internal/handler"
	"spiceshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// AdminCatalog モック
// =====================

type AdminCatalogMock struct{ mock.Mock }

func (m *AdminCatalogMock) CreateProduct(ctx context.Context, actor string, in usecase.ProductInput) (model.Product, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *AdminCatalogMock) UpdateProduct(ctx context.Context, actor string, id string, in usecase.ProductInput) (model.Product, error) {
	args := m.Called(ctx, actor, id, in)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *AdminCatalogMock) DeleteProduct(ctx context.Context, actor string, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *AdminCatalogMock) CreateCategory(ctx context.Context, actor string, in usecase.CategoryInput) (model.Category, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *AdminCatalogMock) UpdateCategory(ctx context.Context, actor string, id string, in usecase.CategoryInput) (model.Category, error) {
	args := m.Called(ctx, actor, id, in)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *AdminCatalogMock) DeleteCategory(ctx context.Context, actor string, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *AdminCatalogMock) CreateRecipe(ctx context.Context, actor string, in usecase.RecipeInput) (usecase.RecipeOutput, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(usecase.RecipeOutput), args.Error(1)
}

func (m *AdminCatalogMock) UpdateRecipe(ctx context.Context, actor string, id string, in usecase.RecipeInput) (usecase.RecipeOutput, error) {
	args := m.Called(ctx, actor, id, in)
	return args.Get(0).(usecase.RecipeOutput), args.Error(1)
}

func (m *AdminCatalogMock) DeleteRecipe(ctx context.Context, actor string, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *AdminCatalogMock) CreateEvent(ctx context.Context, actor string, in usecase.EventInput) (model.Event, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *AdminCatalogMock) UpdateEvent(ctx context.Context, actor string, id string, in usecase.EventInput) (model.Event, error) {
	args := m.Called(ctx, actor, id, in)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *AdminCatalogMock) DeleteEvent(ctx context.Context, actor string, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

var _ handler.AdminCatalog = (*AdminCatalogMock)(nil)

type AdminOrdersMock struct{ mock.Mock }

func (m *AdminOrdersMock) List(ctx context.Context, in usecase.AdminListOrdersInput) (usecase.OrderListOutput, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(usecase.OrderListOutput), args.Error(1)
}

func (m *AdminOrdersMock) UpdateStatus(ctx context.Context, actor string, orderID string, in usecase.AdminUpdateOrderStatusInput) (model.Order, error) {
	args := m.Called(ctx, actor, orderID, in)
	return args.Get(0).(model.Order), args.Error(1)
}

var _ handler.AdminOrders = (*AdminOrdersMock)(nil)

type AuditLogsMock struct{ mock.Mock }

func (m *AuditLogsMock) List(ctx context.Context, in usecase.ListAuditLogsInput) ([]model.AuditLog, error) {
	args := m.Called(ctx, in)
	v, _ := args.Get(0).([]model.AuditLog)
	return v, args.Error(1)
}

var _ handler.AuditLogs = (*AuditLogsMock)(nil)

func newAdminServer(cat *AdminCatalogMock, orders *AdminOrdersMock, audits *AuditLogsMock) *echo.Echo {
	e := echo.New()
	users := adminRepo()
	handler.NewAdminCatalogHandler(cat).RegisterRoutes(e, testCfg, users)
	handler.NewAdminOrderHandler(orders).RegisterRoutes(e, testCfg, users)
	handler.NewAdminAuditLogHandler(audits).RegisterRoutes(e, testCfg, users)
	return e
}

// =====================
// guards
// =====================

func TestAdminRoutes_Guards(t *testing.T) {
	e := newAdminServer(new(AdminCatalogMock), new(AdminOrdersMock), new(AuditLogsMock))

	tests := []struct {
		name   string
		opts   []func(*http.Request)
		status int
	}{
		{name: "no token", status: http.StatusUnauthorized},
		{name: "garbage token", opts: []func(*http.Request){withBearer("nope")}, status: http.StatusUnauthorized},
		{name: "revoked token", opts: []func(*http.Request){withBearer(mustToken(t, "u1", "admin", 3))}, status: http.StatusUnauthorized},
		{name: "not admin", opts: []func(*http.Request){withBearer(mustToken(t, "u2", "staff", 0))}, status: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, e, http.MethodDelete, "/admin/products/p1", nil, tt.opts...)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

// =====================
// catalog
// =====================

func TestAdminCatalogHandler_CreateProduct(t *testing.T) {
	cat := new(AdminCatalogMock)
	catID := "c1"
	cat.On("CreateProduct", mock.Anything, "admin", usecase.ProductInput{
		Title:      "Cumin",
		Price:      money.FromMinor(1250),
		CategoryID: &catID,
	}).Return(model.Product{ID: "p1", Title: "Cumin", Price: money.FromMinor(1250), CategoryID: &catID}, nil)

	e := newAdminServer(cat, new(AdminOrdersMock), new(AuditLogsMock))
	token := mustToken(t, "u1", "admin", 0)

	// 価格は文字列でも受け付ける
	rec := doJSON(t, e, http.MethodPost, "/admin/products",
		map[string]interface{}{"title": "Cumin", "price": "12.50", "category_id": "c1"}, withBearer(token))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "p1", decode[model.Product](t, rec).ID)

	rec = doJSON(t, e, http.MethodPost, "/admin/products",
		map[string]interface{}{"title": "Cumin", "price": "12.505"}, withBearer(token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	cat.AssertExpectations(t)
}

func TestAdminCatalogHandler_UpdateAndDelete(t *testing.T) {
	cat := new(AdminCatalogMock)
	cat.On("UpdateCategory", mock.Anything, "admin", "c1", usecase.CategoryInput{Name: "Herbs"}).
		Return(model.Category{}, usecase.NewHTTPError(http.StatusConflict, "category already exists"))
	cat.On("DeleteEvent", mock.Anything, "admin", "ev1").Return(nil)
	cat.On("DeleteRecipe", mock.Anything, "admin", "r9").Return(usecase.NewHTTPError(http.StatusNotFound, "not found"))

	e := newAdminServer(cat, new(AdminOrdersMock), new(AuditLogsMock))
	token := mustToken(t, "u1", "admin", 0)

	rec := doJSON(t, e, http.MethodPut, "/admin/categories/c1", map[string]string{"name": "Herbs"}, withBearer(token))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "category already exists", decode[errorBody](t, rec).Error)

	rec = doJSON(t, e, http.MethodDelete, "/admin/events/ev1", nil, withBearer(token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "deleted", decode[messageBody](t, rec).Message)

	rec = doJSON(t, e, http.MethodDelete, "/admin/recipes/r9", nil, withBearer(token))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	cat.AssertExpectations(t)
}

// =====================
// orders / audit logs
// =====================

func TestAdminOrderHandler_List(t *testing.T) {
	orders := new(AdminOrdersMock)
	orders.On("List", mock.Anything, usecase.AdminListOrdersInput{Status: "new", Limit: 10, Offset: 20}).
		Return(usecase.OrderListOutput{Items: []model.Order{{ID: "o1"}}, Total: 21}, nil)

	e := newAdminServer(new(AdminCatalogMock), orders, new(AuditLogsMock))
	token := mustToken(t, "u1", "admin", 0)

	rec := doJSON(t, e, http.MethodGet, "/admin/orders?status=new&limit=10&offset=20", nil, withBearer(token))
	assert.Equal(t, http.StatusOK, rec.Code)
	out := decode[usecase.OrderListOutput](t, rec)
	assert.Equal(t, int64(21), out.Total)
	assert.Len(t, out.Items, 1)

	rec = doJSON(t, e, http.MethodGet, "/admin/orders?limit=abc", nil, withBearer(token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid limit", decode[errorBody](t, rec).Error)
}

func TestAdminOrderHandler_UpdateStatus(t *testing.T) {
	orders := new(AdminOrdersMock)
	orders.On("UpdateStatus", mock.Anything, "admin", "o1", usecase.AdminUpdateOrderStatusInput{Status: "completed"}).
		Return(model.Order{ID: "o1", Status: model.OrderStatusCompleted}, nil)
	orders.On("UpdateStatus", mock.Anything, "admin", "o2", usecase.AdminUpdateOrderStatusInput{Status: "new"}).
		Return(model.Order{}, usecase.NewHTTPError(http.StatusBadRequest, "cannot change cancelled order"))

	e := newAdminServer(new(AdminCatalogMock), orders, new(AuditLogsMock))
	token := mustToken(t, "u1", "admin", 0)

	rec := doJSON(t, e, http.MethodPut, "/admin/orders/o1/status", map[string]string{"status": "completed"}, withBearer(token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.OrderStatusCompleted, decode[model.Order](t, rec).Status)

	rec = doJSON(t, e, http.MethodPut, "/admin/orders/o2/status", map[string]string{"status": "new"}, withBearer(token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cannot change cancelled order", decode[errorBody](t, rec).Error)
}

func TestAdminAuditLogHandler_List(t *testing.T) {
	audits := new(AuditLogsMock)
	audits.On("List", mock.Anything, usecase.ListAuditLogsInput{
		Actor:        "admin",
		ResourceType: "order",
		From:         "2025-01-01T00:00:00Z",
		Limit:        50,
	}).Return([]model.AuditLog{{ID: 1, Actor: "admin"}}, nil)

	e := newAdminServer(new(AdminCatalogMock), new(AdminOrdersMock), audits)
	token := mustToken(t, "u1", "admin", 0)

	rec := doJSON(t, e, http.MethodGet,
		"/admin/audit-logs?actor=admin&resource_type=order&from=2025-01-01T00:00:00Z", nil, withBearer(token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.AuditLog](t, rec), 1)
	audits.AssertExpectations(t)
}
