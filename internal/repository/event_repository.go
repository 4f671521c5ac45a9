package repository

import (
	"context"

	"spiceshop/internal/domain/model"
)

type EventRepository interface {
	List(ctx context.Context) ([]model.Event, error)
	FindByID(ctx context.Context, id string) (model.Event, error)

	Create(ctx context.Context, e model.Event) (model.Event, error)
	Update(ctx context.Context, e model.Event) error
	Delete(ctx context.Context, id string) error
}
