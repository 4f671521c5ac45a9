package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// 一意制約違反（slug・username の重複など）
	ErrConflict = errors.New("conflict")
	// 外部キーの参照先がない（存在しない category_id など）
	ErrInvalidReference = errors.New("invalid reference")
)
