package broker

import "time"

// Envelope はキューに流すメッセージの共通の外側。
type Envelope[T any] struct {
	EventID      string    `json:"event_id"`
	EventName    string    `json:"event_name"`
	EventVersion int       `json:"event_version"`
	Producer     string    `json:"producer"`
	OccurredAt   time.Time `json:"occurred_at"`
	Payload      T         `json:"payload"`
}
