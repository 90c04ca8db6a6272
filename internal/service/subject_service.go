package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/faculdade-api/internal/models"
	appErrors "github.com/noah-isme/faculdade-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context, page models.Page) ([]models.Subject, int, error)
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// SubjectRequest carries the writable fields of a subject.
type SubjectRequest struct {
	Name        string `json:"nome" validate:"required,max=50"`
	Description string `json:"descricao" validate:"required"`
}

// SubjectService handles subject workflows.
type SubjectService struct {
	repo      subjectRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns a page of subjects.
func (s *SubjectService) List(ctx context.Context, page models.Page) ([]models.Subject, *models.Pagination, error) {
	subjects, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, nil, internalError(err, "failed to list subjects")
	}
	return subjects, paginationOf(page, total), nil
}

// Get returns a subject by id.
func (s *SubjectService) Get(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, readError(err, "subject not found", "failed to load subject")
	}
	return subject, nil
}

// Create adds a subject.
func (s *SubjectService) Create(ctx context.Context, req SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}

	subject, err := s.repo.Create(ctx, &models.Subject{Name: req.Name, Description: req.Description})
	if err != nil {
		return nil, writeError(err, "subject not found", "subject already exists", "failed to create subject")
	}
	committed(ctx, s.cache, s.metrics, "materia", "create")
	return subject, nil
}

// Update replaces a subject.
func (s *SubjectService) Update(ctx context.Context, id int64, req SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}

	subject, err := s.repo.Update(ctx, &models.Subject{ID: id, Name: req.Name, Description: req.Description})
	if err != nil {
		return nil, writeError(err, "subject not found", "subject already exists", "failed to update subject")
	}
	committed(ctx, s.cache, s.metrics, "materia", "update")
	return subject, nil
}

// Delete removes a subject that no class teaches.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return deleteError(err, "subject is taught in a class", "failed to delete subject")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	committed(ctx, s.cache, s.metrics, "materia", "delete")
	return nil
}
