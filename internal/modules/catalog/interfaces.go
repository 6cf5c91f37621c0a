package catalog

import (
	"context"

	"cabinrental/internal/domain"
	"cabinrental/internal/modules/events"
	"cabinrental/internal/repository"
)

type CabinRepository interface {
	Search(ctx context.Context, f repository.CabinFilter) ([]domain.CabinSummary, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Cabin, error)
	Create(ctx context.Context, cabin *domain.Cabin) error
	Update(ctx context.Context, cabin *domain.Cabin, replaceImages bool) error
	SetActive(ctx context.Context, id int64, active *bool) (*domain.Cabin, error)
}

// BlockReader is used by quotes to check availability.
type BlockReader interface {
	ListByCabin(ctx context.Context, cabinID int64) ([]domain.MaintenanceBlock, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, e events.Event)
}
