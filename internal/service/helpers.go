package service

import (
	"context"
	"database/sql"
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/faculdade-api/internal/models"
	"github.com/noah-isme/faculdade-api/internal/repository"
	appErrors "github.com/noah-isme/faculdade-api/pkg/errors"
)

// NewValidator returns the request validator. A zero models.Date counts as
// absent, so `required` rejects a date sent as "".
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(dateValue, models.Date{})
	return v
}

func dateValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(models.Date)
	if !ok || d.IsZero() {
		return nil
	}
	return d.Time
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

// readError maps a repository read failure: sql.ErrNoRows becomes NOT_FOUND.
func readError(err error, notFound, failure string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return internalError(err, failure)
}

// writeError maps a failed create or update. Unknown keys become NOT_FOUND,
// unique violations CONFLICT and dangling references INVALID_REFERENCE.
func writeError(err error, notFound, duplicate, failure string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, duplicate)
	case errors.Is(err, repository.ErrForeignKey):
		return appErrors.Wrap(err, appErrors.ErrInvalidReference.Code, appErrors.ErrInvalidReference.Status, appErrors.ErrInvalidReference.Message)
	default:
		return internalError(err, failure)
	}
}

// deleteError maps a failed delete. A row still referenced elsewhere is a CONFLICT.
func deleteError(err error, referenced, failure string) error {
	if errors.Is(err, repository.ErrForeignKey) {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, referenced)
	}
	return internalError(err, failure)
}

func paginationOf(page models.Page, total int) *models.Pagination {
	return &models.Pagination{Offset: page.Offset, Limit: page.Limit, TotalCount: total}
}

// committed runs the bookkeeping that follows every successful write.
func committed(ctx context.Context, cache *CacheService, metrics *MetricsService, entity, operation string) {
	cache.Invalidate(ctx)
	metrics.RecordWrite(entity, operation)
}
