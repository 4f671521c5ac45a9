package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"spiceshop/internal/domain/model"
	"spiceshop/internal/domain/money"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ChannelMock struct{ mock.Mock }

func (m *ChannelMock) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *ChannelMock) Close() error {
	return m.Called().Error(0)
}

func TestOrderPlaced_PublishesEnvelope(t *testing.T) {
	ch := new(ChannelMock)
	p := newPublisher(ch)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return at }
	p.newID = func() string { return "ev-1" }

	order := model.Order{
		ID:            "order-1",
		CustomerName:  "Jan",
		CustomerPhone: "600",
		Items:         model.OrderItems{{ID: "a", Title: "Basil", UnitPrice: money.FromMinor(450), Quantity: 2}},
		TotalAmount:   money.FromMinor(900),
		Status:        model.OrderStatusNew,
	}

	var sent amqp.Publishing
	ch.On("PublishWithContext", mock.Anything, "", OrderPlacedQueue, false, false, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(5).(amqp.Publishing) }).
		Return(nil).Once()

	require.NoError(t, p.OrderPlaced(context.Background(), order))
	ch.AssertExpectations(t)

	assert.Equal(t, "application/json", sent.ContentType)
	assert.Equal(t, amqp.Persistent, sent.DeliveryMode)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(sent.Body, &got))
	assert.Equal(t, "ev-1", got["event_id"])
	assert.Equal(t, OrderPlacedEvent, got["event_name"])
	assert.Equal(t, float64(1), got["event_version"])
	assert.Equal(t, "2025-03-01T12:00:00Z", got["occurred_at"])

	payload := got["payload"].(map[string]interface{})
	assert.Equal(t, "order-1", payload["id"])
	assert.Equal(t, "new", payload["status"])
	assert.Equal(t, 9.0, payload["total_amount"])
}

func TestOrderPlaced_ReturnsPublishError(t *testing.T) {
	ch := new(ChannelMock)
	p := newPublisher(ch)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed"))

	err := p.OrderPlaced(context.Background(), model.Order{ID: "order-1"})
	assert.EqualError(t, err, "channel closed")
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.OrderPlaced(context.Background(), model.Order{}))
	assert.NoError(t, Noop{}.Close())
}
