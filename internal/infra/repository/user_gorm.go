package repository

import (
	"context"
	"errors"

	"spiceshop/internal/domain/model"
	repo "spiceshop/internal/repository"

	"gorm.io/gorm"
)

type adminUserGormRepository struct {
	db *gorm.DB
}

// main.goでこれをnewしてusecaseに注入します。
func NewAdminUserGormRepository(db *gorm.DB) repo.AdminUserRepository {
	return &adminUserGormRepository{db: db}
}

func (r *adminUserGormRepository) Create(ctx context.Context, user *model.AdminUser) error {
	return translateErr(r.db.WithContext(ctx).Create(user).Error)
}

func (r *adminUserGormRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *adminUserGormRepository) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *adminUserGormRepository) findOne(ctx context.Context, cond string, arg string) (*model.AdminUser, error) {
	var u model.AdminUser
	err := r.db.WithContext(ctx).Where(cond, arg).First(&u).Error
	if err != nil {
		err = translateErr(err)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *adminUserGormRepository) Update(ctx context.Context, user *model.AdminUser) error {
	return translateErr(r.db.WithContext(ctx).Save(user).Error)
}

// token_versionを+1 します。
func (r *adminUserGormRepository) IncrementTokenVersion(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&model.AdminUser{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + ?", 1))
	if res.Error != nil {
		return translateErr(res.Error)
	}
	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
