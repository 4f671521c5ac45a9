package repository

import (
	"context"

	"spiceshop/internal/domain/model"
)

// 管理者アカウントの保存・取得を約束
type AdminUserRepository interface {
	Create(ctx context.Context, user *model.AdminUser) error
	// 見つからなければ (nil, nil)
	FindByID(ctx context.Context, id string) (*model.AdminUser, error)
	// 見つからなければ (nil, nil)
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	// 最後のログインなどの更新
	Update(ctx context.Context, user *model.AdminUser) error
	//トークンのバージョンを＋１
	IncrementTokenVersion(ctx context.Context, id string) error
}
