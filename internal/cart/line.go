package cart

import "spiceshop/internal/domain/money"

// Line はカートの1行（1商品）。
// タイトルと単価は追加時点の値を持ち、カタログの変更には追従しない。
type Line struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	UnitPrice money.Money `json:"price"`
	Quantity  int64       `json:"quantity"`
}

func (l Line) Total() money.Money {
	return l.UnitPrice.Mul(l.Quantity)
}
