package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	repo "spiceshop/internal/repository"
	"spiceshop/internal/validator"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// repository のエラーを HTTPError に寄せる
func fromRepoErr(err error) error {
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrConflict):
		return NewHTTPError(http.StatusConflict, "already exists")
	case errors.Is(err, repo.ErrInvalidReference):
		return NewHTTPError(http.StatusBadRequest, "invalid reference")
	default:
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
}

// 入力エラーは 400 でメッセージをそのまま返す
func badRequest(err error) error {
	var fe *validator.FieldError
	if errors.As(err, &fe) {
		return NewHTTPError(http.StatusBadRequest, fe.Message)
	}
	return NewHTTPError(http.StatusBadRequest, err.Error())
}

// ID生成
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}
