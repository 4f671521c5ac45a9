package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"spiceshop/internal/domain/money"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// 終端ステータスからは動かさない
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// 注文明細。カートの行をそのままコピーしたスナップショット。
type OrderItem struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	UnitPrice money.Money `json:"price"`
	Quantity  int64       `json:"quantity"`
}

func (it OrderItem) LineTotal() money.Money {
	return it.UnitPrice.Mul(it.Quantity)
}

// jsonb列に入れる明細一覧
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		items = OrderItems{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (items *OrderItems) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*items = OrderItems{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("order items: unsupported scan type %T", src)
	}
	return json.Unmarshal(raw, items)
}

func (items OrderItems) Total() money.Money {
	var total money.Money
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

type Order struct {
	ID            string      `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName  string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string      `gorm:"type:varchar(50);not null" json:"customer_phone"`
	Items         OrderItems  `gorm:"type:jsonb;not null" json:"items"`
	TotalAmount   money.Money `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt     time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}
