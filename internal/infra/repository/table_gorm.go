package repository

import (
	"context"
	"errors"

	repo "spiceshop/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres のエラーコード
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// table は id(uuid文字列) を主キーに持つテーブルの共通CRUD。
type table[T any] struct {
	db *gorm.DB
}

func (t table[T]) list(ctx context.Context, order string, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	items := []T{}
	err := t.db.WithContext(ctx).
		Model(new(T)).
		Scopes(scopes...).
		Order(order).
		Find(&items).Error
	if err != nil {
		return []T{}, translateErr(err)
	}
	return items, nil
}

func (t table[T]) findByID(ctx context.Context, id string) (T, error) {
	var v T
	err := t.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if err != nil {
		var zero T
		return zero, translateErr(err)
	}
	return v, nil
}

func (t table[T]) insert(ctx context.Context, v T) (T, error) {
	if err := t.db.WithContext(ctx).Create(&v).Error; err != nil {
		var zero T
		return zero, translateErr(err)
	}
	return v, nil
}

// fields に入れた列だけ更新する（ゼロ値も書く）
func (t table[T]) update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (t table[T]) delete(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// translateErr はドライバのエラーを repository のエラーに寄せる。
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return repo.ErrConflict
		case pgForeignKeyViolation:
			return repo.ErrInvalidReference
		case pgInvalidTextRepr:
			// uuid として読めないIDは「存在しない」
			return repo.ErrNotFound
		}
	}
	return err
}
