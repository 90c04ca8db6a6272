package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/faculdade-api/internal/models"
	appErrors "github.com/noah-isme/faculdade-api/pkg/errors"
)

type evaluationRepository interface {
	List(ctx context.Context, page models.Page) ([]models.EvaluationDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.EvaluationDetail, error)
	Create(ctx context.Context, evaluation *models.Evaluation) (*models.Evaluation, error)
	Update(ctx context.Context, evaluation *models.Evaluation) (*models.Evaluation, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type taughtSubjectLookup interface {
	FindID(ctx context.Context, classID string, subjectID int64) (int64, bool, error)
}

// CreateEvaluationRequest schedules an evaluation for a subject taught in a class.
type CreateEvaluationRequest struct {
	ClassID         string       `json:"idTurma" validate:"required,max=10"`
	SubjectID       int64        `json:"idMateria" validate:"required"`
	ApplicationDate *models.Date `json:"dataAplicacao" validate:"required"`
	MaxScore        int          `json:"notaMaxima" validate:"required,min=1,max=10"`
}

// UpdateEvaluationRequest reschedules an evaluation or changes its maximum score.
type UpdateEvaluationRequest struct {
	ApplicationDate *models.Date `json:"dataAplicacao" validate:"required"`
	MaxScore        int          `json:"notaMaxima" validate:"required,min=1,max=10"`
}

// EvaluationService handles evaluations.
type EvaluationService struct {
	repo      evaluationRepository
	taught    taughtSubjectLookup
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEvaluationService constructs an EvaluationService.
func NewEvaluationService(repo evaluationRepository, taught taughtSubjectLookup, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *EvaluationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{repo: repo, taught: taught, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns a page of evaluations with class and subject resolved.
func (s *EvaluationService) List(ctx context.Context, page models.Page) ([]models.EvaluationDetail, *models.Pagination, error) {
	evaluations, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, nil, internalError(err, "failed to list evaluations")
	}
	return evaluations, paginationOf(page, total), nil
}

// Get returns an evaluation by id.
func (s *EvaluationService) Get(ctx context.Context, id int64) (*models.EvaluationDetail, error) {
	evaluation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, readError(err, "evaluation not found", "failed to load evaluation")
	}
	return evaluation, nil
}

// Create schedules an evaluation. The subject must already be taught in the
// class, otherwise SUBJECT_NOT_TAUGHT is returned and nothing is written.
func (s *EvaluationService) Create(ctx context.Context, req CreateEvaluationRequest) (*models.EvaluationDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid evaluation payload")
	}

	classID := models.NormalizeClassID(req.ClassID)
	taughtID, found, err := s.taught.FindID(ctx, classID, req.SubjectID)
	if err != nil {
		return nil, internalError(err, "failed to look up taught subject")
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrSubjectNotTaught, "")
	}

	created, err := s.repo.Create(ctx, &models.Evaluation{
		TaughtSubjectID: taughtID,
		ApplicationDate: *req.ApplicationDate,
		MaxScore:        req.MaxScore,
	})
	if err != nil {
		return nil, writeError(err, "evaluation not found", "evaluation already exists", "failed to create evaluation")
	}
	committed(ctx, s.cache, s.metrics, "avaliacao", "create")

	s.logger.Info("evaluation scheduled", zap.Int64("evaluation_id", created.ID), zap.String("class_id", classID), zap.Int64("subject_id", req.SubjectID))
	return s.Get(ctx, created.ID)
}

// Update changes the date and maximum score of an evaluation.
func (s *EvaluationService) Update(ctx context.Context, id int64, req UpdateEvaluationRequest) (*models.EvaluationDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid evaluation payload")
	}

	_, err := s.repo.Update(ctx, &models.Evaluation{ID: id, ApplicationDate: *req.ApplicationDate, MaxScore: req.MaxScore})
	if err != nil {
		return nil, writeError(err, "evaluation not found", "evaluation already exists", "failed to update evaluation")
	}
	committed(ctx, s.cache, s.metrics, "avaliacao", "update")
	return s.Get(ctx, id)
}

// Delete removes an evaluation nobody has sat yet.
func (s *EvaluationService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return deleteError(err, "evaluation already has recorded scores", "failed to delete evaluation")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "evaluation not found")
	}
	committed(ctx, s.cache, s.metrics, "avaliacao", "delete")
	return nil
}
