package repository

import (
	"context"

	"spiceshop/internal/domain/model"

	"gorm.io/gorm"
)

type EventGormRepository struct {
	t table[model.Event]
}

func NewEventGormRepository(db *gorm.DB) *EventGormRepository {
	return &EventGormRepository{t: table[model.Event]{db: db}}
}

func (r *EventGormRepository) List(ctx context.Context) ([]model.Event, error) {
	return r.t.list(ctx, "created_at desc, id desc")
}

func (r *EventGormRepository) FindByID(ctx context.Context, id string) (model.Event, error) {
	return r.t.findByID(ctx, id)
}

func (r *EventGormRepository) Create(ctx context.Context, e model.Event) (model.Event, error) {
	return r.t.insert(ctx, e)
}

func (r *EventGormRepository) Update(ctx context.Context, e model.Event) error {
	return r.t.update(ctx, e.ID, map[string]interface{}{
		"title":     e.Title,
		"address":   e.Address,
		"maps_url":  e.MapsURL,
		"image_url": e.ImageURL,
	})
}

func (r *EventGormRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}
