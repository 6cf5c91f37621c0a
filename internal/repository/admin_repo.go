package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cabinrental/internal/domain"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, mapError(err)
	}
	return &admin, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &admin, nil
}

// Upsert creates the admin or replaces the password of an existing one.
func (r *AdminRepository) Upsert(ctx context.Context, admin *domain.Admin) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash"}),
		}).
		Create(admin).Error
	if err != nil {
		return mapError(err)
	}
	if admin.ID == 0 {
		return r.db.WithContext(ctx).Where("username = ?", admin.Username).First(admin).Error
	}
	return nil
}
