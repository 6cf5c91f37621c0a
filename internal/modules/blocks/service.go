package blocks

import (
	"context"
	"errors"
	"strings"

	"cabinrental/internal/domain"
	"cabinrental/internal/modules/events"
	"cabinrental/internal/pkg/daterange"
	"cabinrental/internal/repository"
)

type Service struct {
	blocks BlockRepository
	events EventPublisher
}

func NewService(blocks BlockRepository, publisher EventPublisher) *Service {
	return &Service{blocks: blocks, events: publisher}
}

// Create validates the range and inserts a block for the cabin unless it
// overlaps one the cabin already has. Touching ranges do not overlap.
func (s *Service) Create(ctx context.Context, admin domain.AdminIdentity, cabinID int64, from, to string, reason *string) (*domain.MaintenanceBlock, error) {
	if admin.IsZero() {
		return nil, domain.ErrUnauthenticated
	}

	r, err := daterange.Validate(from, to)
	if err != nil {
		return nil, err
	}

	block := &domain.MaintenanceBlock{
		CabinID:  cabinID,
		FromDate: r.From,
		ToDate:   r.To,
		Reason:   normalizeReason(reason),
	}

	if err := s.blocks.CreateExclusive(ctx, block); err != nil {
		var overlap *repository.OverlapError
		switch {
		case errors.As(err, &overlap):
			return nil, &ConflictError{Block: overlap.Existing}
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.publish(ctx, events.New(events.BlockCreated, cabinID, admin.AdminID).WithBlock(block.ID))
	return block, nil
}

func (s *Service) Delete(ctx context.Context, admin domain.AdminIdentity, blockID int64) error {
	if admin.IsZero() {
		return domain.ErrUnauthenticated
	}

	block, err := s.blocks.Delete(ctx, blockID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.publish(ctx, events.New(events.BlockDeleted, block.CabinID, admin.AdminID).WithBlock(block.ID))
	return nil
}

// ListForCabin returns the cabin's blocks ordered by start date then id.
func (s *Service) ListForCabin(ctx context.Context, cabinID int64) ([]domain.MaintenanceBlock, error) {
	list, err := s.blocks.ListByCabin(ctx, cabinID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return list, nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.events != nil {
		s.events.Publish(ctx, e)
	}
}

func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
