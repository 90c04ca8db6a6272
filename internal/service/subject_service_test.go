package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculdade-api/internal/models"
	"github.com/noah-isme/faculdade-api/internal/repository"
	appErrors "github.com/noah-isme/faculdade-api/pkg/errors"
)

type mockSubjectRepo struct {
	items     map[int64]*models.Subject
	deleteErr error
}

func (m *mockSubjectRepo) List(ctx context.Context, page models.Page) ([]models.Subject, int, error) {
	return []models.Subject{}, 0, nil
}

func (m *mockSubjectRepo) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	if s, ok := m.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSubjectRepo) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	if m.items == nil {
		m.items = make(map[int64]*models.Subject)
	}
	cp := *subject
	cp.ID = int64(len(m.items) + 1)
	m.items[cp.ID] = &cp
	return &cp, nil
}

func (m *mockSubjectRepo) Update(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	if _, ok := m.items[subject.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	cp := *subject
	m.items[subject.ID] = &cp
	return &cp, nil
}

func (m *mockSubjectRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.items[id]; !ok {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

func TestSubjectServiceCreateNameLength(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), SubjectRequest{Name: strings.Repeat("a", 51), Description: "x"})
	assertErrorCode(t, err, appErrors.ErrValidation)

	subject, err := svc.Create(context.Background(), SubjectRequest{Name: strings.Repeat("a", 50), Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), subject.ID)
}

func TestSubjectServiceDeleteTaught(t *testing.T) {
	repo := &mockSubjectRepo{deleteErr: fmt.Errorf("delete subject: %w", repository.ErrForeignKey)}
	svc := NewSubjectService(repo, nil, nil, nil, nil)

	assertErrorCode(t, svc.Delete(context.Background(), 5), appErrors.ErrConflict)
}

func TestSubjectServiceGetMissing(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil, nil, nil)

	_, err := svc.Get(context.Background(), 5)
	assertErrorCode(t, err, appErrors.ErrNotFound)
}
