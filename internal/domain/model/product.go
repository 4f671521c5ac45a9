package model

import (
	"time"

	"spiceshop/internal/domain/money"
)

// 商品。価格は追加時点でカートにコピーされる。
type Product struct {
	ID          string      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string      `gorm:"type:varchar(255);not null" json:"title"`
	Description string      `gorm:"type:text;not null;default:''" json:"description"`
	Price       money.Money `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL    string      `gorm:"type:text;not null;default:''" json:"image_url"`
	CategoryID  *string     `gorm:"type:uuid;index" json:"category_id"`
	CreatedAt   time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
