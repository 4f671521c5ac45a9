package repository

import (
	"context"

	"spiceshop/internal/domain/model"
)

type OrderListFilter struct {
	Status string
	Limit  int
	Offset int
}

type OrderRepository interface {
	// 注文を1件保存する。成功/失敗だけを返す（チェックアウトが使う）
	Insert(ctx context.Context, order model.Order) error

	FindByID(ctx context.Context, id string) (model.Order, error)
	//管理者用の注文一覧（新しい順）
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}
