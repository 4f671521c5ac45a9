package repository

import (
	"context"

	repo "spiceshop/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	recipes    repo.RecipeRepository
	events     repo.EventRepository
	orders     repo.OrderRepository
	auditLogs  repo.AuditLogRepository
}

func (r *txReposGorm) Products() repo.ProductRepository    { return r.products }
func (r *txReposGorm) Categories() repo.CategoryRepository { return r.categories }
func (r *txReposGorm) Recipes() repo.RecipeRepository      { return r.recipes }
func (r *txReposGorm) Events() repo.EventRepository        { return r.events }
func (r *txReposGorm) Orders() repo.OrderRepository        { return r.orders }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository  { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			products:   NewProductGormRepository(tx),
			categories: NewCategoryGormRepository(tx),
			recipes:    NewRecipeGormRepository(tx),
			events:     NewEventGormRepository(tx),
			orders:     NewOrderGormRepository(tx),
			auditLogs:  NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
