package auth

import (
	"context"

	"cabinrental/internal/domain"
)

// AdminRepository is the subset of the admin store the auth service uses.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
}

type tokenIssuer interface {
	GenerateToken(adminID int64, username string) (string, error)
}
