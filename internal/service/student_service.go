package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/faculdade-api/internal/dto"
	"github.com/noah-isme/faculdade-api/internal/models"
	appErrors "github.com/noah-isme/faculdade-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, page models.Page) ([]models.Student, int, error)
	FindByRM(ctx context.Context, rm int64) (*models.Student, error)
	Exists(ctx context.Context, rm int64) (bool, error)
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) (*models.Student, error)
	Delete(ctx context.Context, rm int64) (int64, error)
	ListTakenEvaluations(ctx context.Context, rm int64) ([]models.TakenEvaluation, error)
}

// StudentRequest carries the writable fields of a student.
type StudentRequest struct {
	Email     string       `json:"email" validate:"required,email"`
	CPF       string       `json:"cpf" validate:"required,len=11,number"`
	Name      string       `json:"nome" validate:"required,max=70"`
	BirthDate *models.Date `json:"dataNascimento" validate:"required"`
	ClassID   string       `json:"idTurma" validate:"required,max=10"`
}

func (r StudentRequest) toModel(rm int64) *models.Student {
	return &models.Student{
		RM:        rm,
		Email:     r.Email,
		CPF:       r.CPF,
		Name:      r.Name,
		BirthDate: *r.BirthDate,
		ClassID:   models.NormalizeClassID(r.ClassID),
	}
}

// StudentService handles student workflows.
type StudentService struct {
	repo      studentRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService. cache and metrics may be nil.
func NewStudentService(repo studentRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns a page of students.
func (s *StudentService) List(ctx context.Context, page models.Page) ([]models.Student, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, nil, internalError(err, "failed to list students")
	}
	return students, paginationOf(page, total), nil
}

// Get returns a student by RM.
func (s *StudentService) Get(ctx context.Context, rm int64) (*models.Student, error) {
	student, err := s.repo.FindByRM(ctx, rm)
	if err != nil {
		return nil, readError(err, "student not found", "failed to load student")
	}
	return student, nil
}

// Create registers a student in an existing class.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}

	student, err := s.repo.Create(ctx, req.toModel(0))
	if err != nil {
		s.logger.Debug("create student failed", zap.Error(err))
		return nil, writeError(err, "student not found", "student already exists", "failed to create student")
	}
	committed(ctx, s.cache, s.metrics, "aluno", "create")
	return student, nil
}

// Update replaces every writable field of a student.
func (s *StudentService) Update(ctx context.Context, rm int64, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}

	student, err := s.repo.Update(ctx, req.toModel(rm))
	if err != nil {
		return nil, writeError(err, "student not found", "student already exists", "failed to update student")
	}
	committed(ctx, s.cache, s.metrics, "aluno", "update")
	return student, nil
}

// Delete removes a student with no recorded evaluation scores.
func (s *StudentService) Delete(ctx context.Context, rm int64) error {
	affected, err := s.repo.Delete(ctx, rm)
	if err != nil {
		return deleteError(err, "student has recorded evaluations", "failed to delete student")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	committed(ctx, s.cache, s.metrics, "aluno", "delete")
	return nil
}

// Exams returns the evaluations a student has taken.
func (s *StudentService) Exams(ctx context.Context, rm int64) (*dto.StudentExams, error) {
	key := cacheKey("aluno", strconv.FormatInt(rm, 10), "provas")
	return remember(ctx, s.cache, key, func(ctx context.Context) (*dto.StudentExams, error) {
		exists, err := s.repo.Exists(ctx, rm)
		if err != nil {
			return nil, internalError(err, "failed to load student")
		}
		if !exists {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}

		exams, err := s.repo.ListTakenEvaluations(ctx, rm)
		if err != nil {
			return nil, internalError(err, "failed to list student evaluations")
		}
		return &dto.StudentExams{RM: rm, Exams: exams}, nil
	})
}
