package blocks

import (
	"errors"
	"fmt"

	"cabinrental/internal/domain"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflictingBlock = errors.New("block overlaps an existing block")
)

// ConflictError reports the existing block a new one collided with.
type ConflictError struct {
	Block domain.MaintenanceBlock
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: id=%d [%s,%s)", ErrConflictingBlock, e.Block.ID, e.Block.FromDate, e.Block.ToDate)
}

func (e *ConflictError) Unwrap() error { return ErrConflictingBlock }
