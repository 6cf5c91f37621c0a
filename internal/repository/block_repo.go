package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cabinrental/internal/domain"
	"cabinrental/internal/pkg/daterange"
)

type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// CreateExclusive inserts b unless it overlaps another block of the same
// cabin. The owning cabin row is locked for the duration of the check and
// insert, so two overlapping creates for one cabin cannot both succeed.
// Returns ErrNotFound for an unknown cabin and *OverlapError on conflict.
func (r *BlockRepository) CreateExclusive(ctx context.Context, b *domain.MaintenanceBlock) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cabin domain.Cabin
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", b.CabinID).
			First(&cabin).Error
		if err != nil {
			return err
		}

		var existing []domain.MaintenanceBlock
		err = tx.Where("cabin_id = ?", b.CabinID).
			Order("from_date ASC, id ASC").
			Find(&existing).Error
		if err != nil {
			return err
		}

		for _, e := range existing {
			if daterange.Overlaps(b.FromDate, b.ToDate, e.FromDate, e.ToDate) {
				return &OverlapError{Existing: e}
			}
		}

		return tx.Create(b).Error
	})
	return mapError(err)
}

// Delete removes a block by id and returns the removed row.
func (r *BlockRepository) Delete(ctx context.Context, id int64) (*domain.MaintenanceBlock, error) {
	var block domain.MaintenanceBlock
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&block, id).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.MaintenanceBlock{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &block, nil
}

// ListByCabin returns the cabin's blocks by start date. The cabin must exist.
func (r *BlockRepository) ListByCabin(ctx context.Context, cabinID int64) ([]domain.MaintenanceBlock, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Cabin{}).Where("id = ?", cabinID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	blocks := []domain.MaintenanceBlock{}
	err := r.db.WithContext(ctx).
		Where("cabin_id = ?", cabinID).
		Order("from_date ASC, id ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// DeleteEndedBy removes blocks whose to_date is on or before cutoff.
func (r *BlockRepository) DeleteEndedBy(ctx context.Context, cutoff string) (int64, error) {
	res := r.db.WithContext(ctx).Where("to_date <= ?", cutoff).Delete(&domain.MaintenanceBlock{})
	return res.RowsAffected, res.Error
}
