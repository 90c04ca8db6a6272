package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculdade-api/internal/models"
	"github.com/noah-isme/faculdade-api/internal/repository"
	appErrors "github.com/noah-isme/faculdade-api/pkg/errors"
)

type mockEvaluationRepo struct {
	items       map[int64]*models.Evaluation
	nextID      int64
	createCalls int
	deleteErr   error
}

func (m *mockEvaluationRepo) detail(e *models.Evaluation) *models.EvaluationDetail {
	return &models.EvaluationDetail{
		ID:              e.ID,
		Class:           models.Class{ID: "T1A"},
		Subject:         models.Subject{ID: 5},
		ApplicationDate: e.ApplicationDate,
		MaxScore:        e.MaxScore,
	}
}

func (m *mockEvaluationRepo) List(ctx context.Context, page models.Page) ([]models.EvaluationDetail, int, error) {
	result := []models.EvaluationDetail{}
	for _, e := range m.items {
		result = append(result, *m.detail(e))
	}
	return result, len(result), nil
}

func (m *mockEvaluationRepo) FindByID(ctx context.Context, id int64) (*models.EvaluationDetail, error) {
	if e, ok := m.items[id]; ok {
		return m.detail(e), nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEvaluationRepo) Create(ctx context.Context, evaluation *models.Evaluation) (*models.Evaluation, error) {
	m.createCalls++
	if m.items == nil {
		m.items = make(map[int64]*models.Evaluation)
	}
	m.nextID++
	cp := *evaluation
	cp.ID = m.nextID
	m.items[cp.ID] = &cp
	return &cp, nil
}

func (m *mockEvaluationRepo) Update(ctx context.Context, evaluation *models.Evaluation) (*models.Evaluation, error) {
	existing, ok := m.items[evaluation.ID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	existing.ApplicationDate = evaluation.ApplicationDate
	existing.MaxScore = evaluation.MaxScore
	cp := *existing
	return &cp, nil
}

func (m *mockEvaluationRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.items[id]; !ok {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

func newEvaluationFixture() (*EvaluationService, *mockEvaluationRepo) {
	repo := &mockEvaluationRepo{}
	taught := &mockTaughtSubjectRepo{assignments: map[string]int64{taughtKey("T1A", 5): 42}}
	return NewEvaluationService(repo, taught, nil, nil, nil, nil), repo
}

func TestEvaluationServiceCreateRequiresTaughtSubject(t *testing.T) {
	svc, repo := newEvaluationFixture()
	date := models.NewDate(2024, time.March, 10)

	_, err := svc.Create(context.Background(), CreateEvaluationRequest{ClassID: "T1A", SubjectID: 6, ApplicationDate: &date, MaxScore: 10})
	assertErrorCode(t, err, appErrors.ErrSubjectNotTaught)
	assert.Zero(t, repo.createCalls)
}

func TestEvaluationServiceCreate(t *testing.T) {
	svc, repo := newEvaluationFixture()
	date := models.NewDate(2024, time.March, 10)

	created, err := svc.Create(context.Background(), CreateEvaluationRequest{ClassID: "t1a", SubjectID: 5, ApplicationDate: &date, MaxScore: 10})
	require.NoError(t, err)
	assert.Equal(t, "T1A", created.Class.ID)
	assert.Equal(t, "2024-03-10", created.ApplicationDate.String())
	assert.Equal(t, int64(42), repo.items[created.ID].TaughtSubjectID)
}

func TestEvaluationServiceCreateValidation(t *testing.T) {
	svc, repo := newEvaluationFixture()
	date := models.NewDate(2024, time.March, 10)

	_, err := svc.Create(context.Background(), CreateEvaluationRequest{ClassID: "T1A", SubjectID: 5, ApplicationDate: &date, MaxScore: 11})
	assertErrorCode(t, err, appErrors.ErrValidation)

	_, err = svc.Create(context.Background(), CreateEvaluationRequest{ClassID: "T1A", SubjectID: 5, MaxScore: 5})
	assertErrorCode(t, err, appErrors.ErrValidation)
	assert.Zero(t, repo.createCalls)
}

func TestEvaluationServiceRejectsEmptyApplicationDate(t *testing.T) {
	svc, repo := newEvaluationFixture()

	var create CreateEvaluationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"idTurma":"T1A","idMateria":5,"dataAplicacao":"","notaMaxima":10}`), &create))
	_, err := svc.Create(context.Background(), create)
	assertErrorCode(t, err, appErrors.ErrValidation)
	assert.Zero(t, repo.createCalls)

	date := models.NewDate(2024, time.March, 10)
	created, err := svc.Create(context.Background(), CreateEvaluationRequest{ClassID: "T1A", SubjectID: 5, ApplicationDate: &date, MaxScore: 10})
	require.NoError(t, err)

	var update UpdateEvaluationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"dataAplicacao":"","notaMaxima":8}`), &update))
	_, err = svc.Update(context.Background(), created.ID, update)
	assertErrorCode(t, err, appErrors.ErrValidation)
	assert.Equal(t, "2024-03-10", repo.items[created.ID].ApplicationDate.String())
}

func TestEvaluationServiceUpdateAndDelete(t *testing.T) {
	svc, _ := newEvaluationFixture()
	date := models.NewDate(2024, time.March, 10)
	later := models.NewDate(2024, time.April, 2)

	_, err := svc.Update(context.Background(), 1, UpdateEvaluationRequest{ApplicationDate: &later, MaxScore: 8})
	assertErrorCode(t, err, appErrors.ErrNotFound)

	created, err := svc.Create(context.Background(), CreateEvaluationRequest{ClassID: "T1A", SubjectID: 5, ApplicationDate: &date, MaxScore: 10})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateEvaluationRequest{ApplicationDate: &later, MaxScore: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.MaxScore)
	assert.Equal(t, "2024-04-02", updated.ApplicationDate.String())

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	assertErrorCode(t, err, appErrors.ErrNotFound)
}

func TestEvaluationServiceDeleteWithRecordedScores(t *testing.T) {
	svc, repo := newEvaluationFixture()
	repo.deleteErr = fmt.Errorf("delete evaluation: %w", repository.ErrForeignKey)

	assertErrorCode(t, svc.Delete(context.Background(), 1), appErrors.ErrConflict)
}
