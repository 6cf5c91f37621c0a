package blocks

import (
	"context"

	"cabinrental/internal/domain"
	"cabinrental/internal/modules/events"
)

type BlockRepository interface {
	CreateExclusive(ctx context.Context, b *domain.MaintenanceBlock) error
	Delete(ctx context.Context, id int64) (*domain.MaintenanceBlock, error)
	ListByCabin(ctx context.Context, cabinID int64) ([]domain.MaintenanceBlock, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, e events.Event)
}
