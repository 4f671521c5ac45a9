package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"spiceshop/internal/cart"
	"spiceshop/internal/domain/model"
	"spiceshop/internal/domain/money"
	"spiceshop/internal/validator"

	"go.uber.org/zap"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrSubmissionInProgress = errors.New("submission in progress")
	ErrSubmissionFailed     = errors.New("submission failed")
)

// 合計が orders.total_amount に入らないときの文言
const TotalTooLargeMessage = "order total too large"

// 送信失敗時に表示する文言
const RetryMessage = "failed to place order, please try again"

// OrderWriter は orders テーブルへの insert だけを約束する。
type OrderWriter interface {
	Insert(ctx context.Context, order model.Order) error
}

// 注文が確定したことを外へ知らせる（失敗しても注文は成功扱い）
type Notifier interface {
	OrderPlaced(ctx context.Context, order model.Order) error
}

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

// Form は注文フォームの入力内容。
type Form struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// Status は画面に出すための現在の状態。
type Status struct {
	State State  `json:"state"`
	Form  Form   `json:"form"`
	Error string `json:"error,omitempty"`
}

// Workflow はカートを注文レコードにして Data Store へ渡す。
// 送信中の2回目の Submit は受け付けない。
type Workflow struct {
	cart     *cart.Store
	orders   OrderWriter
	notifier Notifier
	ids      IDGenerator
	clock    Clock
	timeout  time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	state  State
	form   Form
	errMsg string
}

func New(
	store *cart.Store,
	orders OrderWriter,
	notifier Notifier,
	ids IDGenerator,
	clock Clock,
	timeout time.Duration,
	logger *zap.Logger,
) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		cart:     store,
		orders:   orders,
		notifier: notifier,
		ids:      ids,
		clock:    clock,
		timeout:  timeout,
		logger:   logger,
		state:    Idle,
	}
}

// 送信中でもフォームは編集できる（送信内容は開始時点で確定している）
func (w *Workflow) SetForm(f Form) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form = f
}

func (w *Workflow) Form() Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

func (w *Workflow) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Status{State: w.state, Form: w.form, Error: w.errMsg}
}

// Submit は現在のカートとフォームで注文を1件作る。
//
// 成功: カートを空にして閉じ、フォームをリセットする。
// 失敗: カートとフォームはそのまま、エラーメッセージだけ残す。
func (w *Workflow) Submit(ctx context.Context) (model.Order, error) {
	w.mu.Lock()
	if w.state == Submitting {
		w.mu.Unlock()
		return model.Order{}, ErrSubmissionInProgress
	}

	form := Form{
		CustomerName:  strings.TrimSpace(w.form.CustomerName),
		CustomerPhone: strings.TrimSpace(w.form.CustomerPhone),
	}
	if err := validator.CheckoutForm(form.CustomerName, form.CustomerPhone); err != nil {
		w.errMsg = err.Error()
		w.mu.Unlock()
		return model.Order{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	lines := w.cart.State().Snapshot()
	if len(lines) == 0 {
		w.errMsg = ErrEmptyCart.Error()
		w.mu.Unlock()
		return model.Order{}, ErrEmptyCart
	}
	if err := checkAmounts(lines); err != nil {
		w.errMsg = TotalTooLargeMessage
		w.mu.Unlock()
		return model.Order{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	w.moveTo(Submitting)
	w.errMsg = ""
	w.mu.Unlock()

	order := w.buildOrder(form, lines)

	insertCtx := ctx
	if w.timeout > 0 {
		var cancel context.CancelFunc
		insertCtx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	err := w.orders.Insert(insertCtx, order)

	w.mu.Lock()
	w.moveTo(Idle)
	if err != nil {
		w.errMsg = RetryMessage
		w.mu.Unlock()

		w.logger.Warn("order submission failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		return model.Order{}, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	w.cart.DispatchFunc(func(s cart.State) []cart.Action {
		actions := []cart.Action{cart.ClearCart{}}
		if s.IsOpen {
			actions = append(actions, cart.ToggleCartVisibility{})
		}
		return actions
	})
	w.form = Form{}
	w.errMsg = ""
	w.mu.Unlock()

	w.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.String("total_amount", order.TotalAmount.String()),
	)

	if w.notifier != nil {
		if err := w.notifier.OrderPlaced(context.WithoutCancel(ctx), order); err != nil {
			w.logger.Warn("order notification failed", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	return order, nil
}

func (w *Workflow) buildOrder(form Form, lines []cart.Line) model.Order {
	items := make(model.OrderItems, 0, len(lines))
	for _, l := range lines {
		items = append(items, model.OrderItem{
			ID:        l.ID,
			Title:     l.Title,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}

	now := w.clock.Now()
	return model.Order{
		ID:            w.ids.NewID(),
		CustomerName:  form.CustomerName,
		CustomerPhone: form.CustomerPhone,
		Items:         items,
		TotalAmount:   items.Total(),
		Status:        model.OrderStatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// 送る前に数量と合計が保存できる範囲か確かめる（DBで落ちると再試行しても通らない）
func checkAmounts(lines []cart.Line) error {
	var total money.Money
	for _, l := range lines {
		if l.Quantity < 1 || l.Quantity > cart.MaxLineQuantity {
			return fmt.Errorf("line %s: quantity %d out of range", l.ID, l.Quantity)
		}
		sub, err := l.UnitPrice.MulChecked(l.Quantity)
		if err != nil {
			return fmt.Errorf("line %s: %w", l.ID, err)
		}
		if total, err = total.AddChecked(sub); err != nil {
			return err
		}
	}
	if total > money.MaxStored {
		return fmt.Errorf("total %s exceeds %s", total, money.MaxStored)
	}
	return nil
}

// mu を持った状態で呼ぶ
func (w *Workflow) moveTo(to State) {
	if !canTransition(w.state, to) {
		w.logger.Error("invalid checkout transition",
			zap.Stringer("from", w.state),
			zap.Stringer("to", to),
		)
	}
	w.state = to
}
