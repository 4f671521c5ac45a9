package validator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

// FieldError は項目ごとの入力エラー。errors.Is(err, ErrInvalidInput) で判定できる。
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

func fieldError(field, format string, args ...interface{}) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// 必須チェック（空白だけも不可）
func Required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fieldError(field, "%s required", field)
	}
	return nil
}

func MaxLen(field, v string, n int) error {
	if utf8.RuneCountInString(v) > n {
		return fieldError(field, "%s too long", field)
	}
	return nil
}

// 空ならOK。入っているなら http(s) のURLであること。
func OptionalURL(field, v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fieldError(field, "invalid %s", field)
	}
	return nil
}

// 最初のエラーを返す
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// 注文フォーム（名前・電話番号）の検証
func CheckoutForm(name, phone string) error {
	return First(
		Required("customer_name", name),
		MaxLen("customer_name", strings.TrimSpace(name), 255),
		Required("customer_phone", phone),
		MaxLen("customer_phone", strings.TrimSpace(phone), 50),
	)
}

// ログイン入力の検証
func Credentials(username, password string) error {
	return First(
		Required("username", username),
		MaxLen("username", username, 100),
		Required("password", password),
	)
}
