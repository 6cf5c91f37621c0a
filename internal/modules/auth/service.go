package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"cabinrental/internal/domain"
	"cabinrental/internal/repository"
)

// dummyHash is compared against when the username is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type Service struct {
	admins AdminRepository
	jwt    tokenIssuer
}

type LoginResult struct {
	Admin *domain.Admin
	Token string
}

func NewService(admins AdminRepository, jwt tokenIssuer) *Service {
	return &Service{admins: admins, jwt: jwt}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return nil, err
	}

	admin.PasswordHash = ""
	return &LoginResult{Admin: admin, Token: token}, nil
}

// Me resolves the session identity to a stored admin. A session whose admin
// has since been removed is unauthorized.
func (s *Service) Me(ctx context.Context, identity domain.AdminIdentity) (*domain.Admin, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthenticated
	}

	admin, err := s.admins.GetByID(ctx, identity.AdminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	admin.PasswordHash = ""
	return admin, nil
}

// HashPassword is used by the seed command to store admin credentials.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
