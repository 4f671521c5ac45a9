package usecase

import (
	"context"
	"net/http"
	"strings"

	"spiceshop/internal/domain/model"
	repo "spiceshop/internal/repository"
)

type AdminOrderUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewAdminOrderUsecase(tx repo.TransactionManager, clock Clock) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, clock: clock}
}

type AdminListOrdersInput struct {
	Status string
	Limit  int
	Offset int
}

type OrderListOutput struct {
	Items []model.Order `json:"items"`
	Total int64         `json:"total"`
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// 注文一覧（新しい順）
func (u *AdminOrderUsecase) List(ctx context.Context, in AdminListOrdersInput) (OrderListOutput, error) {
	status := strings.TrimSpace(in.Status)
	if status != "" && !model.OrderStatus(status).Valid() {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if in.Limit < 0 || in.Limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.Offset < 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}

	var out OrderListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().List(ctx, repo.OrderListFilter{
			Status: status,
			Limit:  in.Limit,
			Offset: in.Offset,
		})
		if err != nil {
			return fromRepoErr(err)
		}
		out = OrderListOutput{Items: orders, Total: total}
		return nil
	})
	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

// ステータス更新。completed / cancelled からは動かさない。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actor string, orderID string, in AdminUpdateOrderStatusInput) (model.Order, error) {
	if actor == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !newStatus.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return fromRepoErr(err)
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			out = o
			return nil
		}
		// 終端ガード
		if o.Status.Terminal() {
			return NewHTTPError(http.StatusBadRequest, "cannot change "+string(o.Status)+" order")
		}

		beforeStatus := o.Status
		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return fromRepoErr(err)
		}

		now := u.clock.Now()
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:        actor,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   `{"status":"` + string(beforeStatus) + `"}`,
			AfterJSON:    `{"status":"` + string(newStatus) + `"}`,
			CreatedAt:    now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = newStatus
		o.UpdatedAt = now
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}
