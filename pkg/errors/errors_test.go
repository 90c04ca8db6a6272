package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", Clone(ErrNotFound, "course not found"))

	appErr := FromError(wrapped)
	assert.Equal(t, ErrNotFound.Code, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "course not found", appErr.Message)
}

func TestFromErrorHidesUntypedErrors(t *testing.T) {
	appErr := FromError(sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, ErrInternal.Message, appErr.Message)
	assert.ErrorIs(t, appErr, sql.ErrConnDone)
}

func TestClonedErrorsMatchByCode(t *testing.T) {
	clone := Clone(ErrSubjectNotTaught, "subject 3 is not taught in class T1A")
	assert.True(t, errors.Is(clone, ErrSubjectNotTaught))
	assert.False(t, errors.Is(clone, ErrNotFound))
	assert.Nil(t, FromError(nil))
}
