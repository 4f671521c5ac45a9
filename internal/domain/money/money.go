package money

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// 小数点以下の桁数（1/100単位）
const Scale int32 = 2

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrOverflow      = errors.New("amount overflow")
)

// MaxStored は numeric(12,2) 列に入る最大値（9,999,999,999.99）。
const MaxStored Money = 999_999_999_999

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

// Money は最小単位（1/100）の整数で持つ金額。
// 小数の変換は入出力の境界だけで行う。
type Money int64

// Parse は "12.50" のような10進文字列を Money にする。
// 小数3桁以上は丸めずにエラーにする。
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return FromDecimal(d)
}

func FromDecimal(d decimal.Decimal) (Money, error) {
	minor := d.Shift(Scale)
	if !minor.IsInteger() {
		return 0, ErrInvalidAmount
	}
	if minor.GreaterThan(maxAmount) || minor.LessThan(minAmount) {
		return 0, ErrInvalidAmount
	}
	return Money(minor.IntPart()), nil
}

func FromMinor(v int64) Money {
	return Money(v)
}

func (m Money) Minor() int64 {
	return int64(m)
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -Scale)
}

// 表示用（常に小数2桁）
func (m Money) String() string {
	return m.Decimal().StringFixed(Scale)
}

// Add / Mul は桁あふれしたら上限か下限で止まる（符号は反転しない）。
// 溢れたかを知りたいときは AddChecked / MulChecked を使う。
func (m Money) Add(o Money) Money {
	v, err := m.AddChecked(o)
	if err != nil {
		return saturate(o > 0)
	}
	return v
}

func (m Money) Mul(qty int64) Money {
	v, err := m.MulChecked(qty)
	if err != nil {
		return saturate((m > 0) == (qty > 0))
	}
	return v
}

func (m Money) AddChecked(o Money) (Money, error) {
	v := m + o
	if (o > 0 && v < m) || (o < 0 && v > m) {
		return 0, ErrOverflow
	}
	return v, nil
}

func (m Money) MulChecked(qty int64) (Money, error) {
	if m == 0 || qty == 0 {
		return 0, nil
	}
	p := decimal.NewFromInt(int64(m)).Mul(decimal.NewFromInt(qty))
	if p.GreaterThan(maxAmount) || p.LessThan(minAmount) {
		return 0, ErrOverflow
	}
	return Money(p.IntPart()), nil
}

func saturate(positive bool) Money {
	if positive {
		return Money(math.MaxInt64)
	}
	return Money(math.MinInt64)
}

func (m Money) IsNegative() bool {
	return m < 0
}

// JSONでは数値リテラル（17.50）として出す。
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// 数値でも文字列（"17.50"）でも受け付ける。
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}
	v, err := Parse(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// numeric(12,2) 列へは10進文字列で渡す。
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case []byte:
		p, err := Parse(string(v))
		if err != nil {
			return err
		}
		*m = p
		return nil
	case string:
		p, err := Parse(v)
		if err != nil {
			return err
		}
		*m = p
		return nil
	case int64:
		p, err := FromDecimal(decimal.NewFromInt(v))
		if err != nil {
			return err
		}
		*m = p
		return nil
	case float64:
		p, err := FromDecimal(decimal.NewFromFloat(v).Round(Scale))
		if err != nil {
			return err
		}
		*m = p
		return nil
	default:
		return fmt.Errorf("money: unsupported scan type %T", src)
	}
}
