package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"cabinrental/internal/domain"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("unique constraint violation")
	ErrConstraint = errors.New("constraint violation")
	ErrOverlap    = errors.New("range overlaps an existing block")
)

// OverlapError carries the stored block that a new range collided with.
type OverlapError struct {
	Existing domain.MaintenanceBlock
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("block %d [%s,%s) overlaps", e.Existing.ID, e.Existing.FromDate, e.Existing.ToDate)
}

func (e *OverlapError) Unwrap() error { return ErrOverlap }

// mapError converts driver and gorm errors into the package sentinels.
// Anything unrecognised is returned unchanged.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueConstraintError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case isConstraintError(err):
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return err
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

// isConstraintError covers FK and CHECK violations.
func isConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" || pgErr.Code == "23514"
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") || strings.Contains(msg, "check constraint")
}
