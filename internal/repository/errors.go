package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Constraint violations reported by PostgreSQL, surfaced so services can map
// them onto domain errors instead of generic failures.
var (
	ErrDuplicate  = errors.New("duplicate key")
	ErrForeignKey = errors.New("foreign key violation")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// classify tags PostgreSQL constraint errors with ErrDuplicate or ErrForeignKey.
// The original error stays reachable through errors.As.
func classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	default:
		return err
	}
}
