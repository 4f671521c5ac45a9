package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"spiceshop/internal/domain/model"
	repo "spiceshop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	products   *ProductRepoMock
	categories *CategoryRepoMock
	recipes    *RecipeRepoMock
	events     *EventRepoMock
	orders     *OrderRepoMock
	auditLogs  *AuditRepoMock
}

func (r *TxReposMock) Products() repo.ProductRepository    { return r.products }
func (r *TxReposMock) Categories() repo.CategoryRepository { return r.categories }
func (r *TxReposMock) Recipes() repo.RecipeRepository      { return r.recipes }
func (r *TxReposMock) Events() repo.EventRepository        { return r.events }
func (r *TxReposMock) Orders() repo.OrderRepository        { return r.orders }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository  { return r.auditLogs }

func newTxRepos() *TxReposMock {
	return &TxReposMock{
		products:   new(ProductRepoMock),
		categories: new(CategoryRepoMock),
		recipes:    new(RecipeRepoMock),
		events:     new(EventRepoMock),
		orders:     new(OrderRepoMock),
		auditLogs:  new(AuditRepoMock),
	}
}

func newTxManager(r *TxReposMock) *TxManagerMock {
	tm := &TxManagerMock{Repos: r}
	tm.On("WithinTx", mock.Anything)
	return tm
}

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, f repo.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id string) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *CategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type RecipeRepoMock struct{ mock.Mock }

func (m *RecipeRepoMock) List(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Recipe)
	return items, args.Error(1)
}

func (m *RecipeRepoMock) FindByID(ctx context.Context, id string) (model.Recipe, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(model.Recipe)
	return r, args.Error(1)
}

func (m *RecipeRepoMock) Create(ctx context.Context, r model.Recipe) (model.Recipe, error) {
	args := m.Called(ctx, r)
	out, _ := args.Get(0).(model.Recipe)
	return out, args.Error(1)
}

func (m *RecipeRepoMock) Update(ctx context.Context, r model.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *RecipeRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type EventRepoMock struct{ mock.Mock }

func (m *EventRepoMock) List(ctx context.Context) ([]model.Event, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Event)
	return items, args.Error(1)
}

func (m *EventRepoMock) FindByID(ctx context.Context, id string) (model.Event, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(model.Event)
	return e, args.Error(1)
}

func (m *EventRepoMock) Create(ctx context.Context, e model.Event) (model.Event, error) {
	args := m.Called(ctx, e)
	out, _ := args.Get(0).(model.Event)
	return out, args.Error(1)
}

func (m *EventRepoMock) Update(ctx context.Context, e model.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *EventRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Insert(ctx context.Context, o model.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, id string) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type AdminUserRepoMock struct{ mock.Mock }

func (m *AdminUserRepoMock) Create(ctx context.Context, user *model.AdminUser) error {
	return m.Called(ctx, user).Error(0)
}

func (m *AdminUserRepoMock) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.AdminUser)
	return u, args.Error(1)
}

func (m *AdminUserRepoMock) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.AdminUser)
	return u, args.Error(1)
}

func (m *AdminUserRepoMock) Update(ctx context.Context, user *model.AdminUser) error {
	return m.Called(ctx, user).Error(0)
}

func (m *AdminUserRepoMock) IncrementTokenVersion(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var (
	_ repo.ProductRepository   = (*ProductRepoMock)(nil)
	_ repo.CategoryRepository  = (*CategoryRepoMock)(nil)
	_ repo.RecipeRepository    = (*RecipeRepoMock)(nil)
	_ repo.EventRepository     = (*EventRepoMock)(nil)
	_ repo.OrderRepository     = (*OrderRepoMock)(nil)
	_ repo.AuditLogRepository  = (*AuditRepoMock)(nil)
	_ repo.AdminUserRepository = (*AdminUserRepoMock)(nil)
)

// =====================
// helpers
// =====================

type fixedIDGen struct{ id string }

func (g fixedIDGen) NewID() string { return g.id }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// HTTPErrorの実装詳細に依存しない
func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
