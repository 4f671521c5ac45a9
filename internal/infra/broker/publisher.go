package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spiceshop/internal/domain/model"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrderPlacedQueue = "orders.placed"
	OrderPlacedEvent = "order.placed"

	producer       = "spiceshop-api"
	publishTimeout = 3 * time.Second
)

// channel は amqp.Channel のうち使う部分だけ
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher は注文確定をキューへ流す（販売者への通知用）。
type Publisher struct {
	conn  *amqp.Connection
	ch    channel
	now   func() time.Time
	newID func() string
}

// Dial して orders.placed キューを宣言する。
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// キューが無くて publish が落ちないように先に宣言
	if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s: %w", OrderPlacedQueue, err)
	}

	p := newPublisher(ch)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel) *Publisher {
	return &Publisher{
		ch:    ch,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (p *Publisher) OrderPlaced(ctx context.Context, order model.Order) error {
	ev := Envelope[model.Order]{
		EventID:      p.newID(),
		EventName:    OrderPlacedEvent,
		EventVersion: 1,
		Producer:     producer,
		OccurredAt:   p.now(),
		Payload:      order,
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", OrderPlacedEvent, err)
	}
	return p.publishJSON(ctx, OrderPlacedQueue, body)
}

func (p *Publisher) publishJSON(ctx context.Context, queue string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",    // default exchange
		queue, // キュー名をそのまま routing key に
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Noop は RABBITMQ_URL が無いときの代わり。
type Noop struct{}

func (Noop) OrderPlaced(context.Context, model.Order) error { return nil }

func (Noop) Close() error { return nil }
