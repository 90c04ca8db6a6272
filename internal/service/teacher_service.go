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

type teacherRepository interface {
	List(ctx context.Context, page models.Page) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ListTaughtSubjects(ctx context.Context, teacherID int64) ([]models.ClassSubject, error)
}

// TeacherRequest carries the writable fields of a teacher.
type TeacherRequest struct {
	Name  string `json:"nome" validate:"required,max=70"`
	CPF   string `json:"cpf" validate:"required,len=11,number"`
	Phone string `json:"telefone" validate:"required,number,min=10,max=11"`
	Email string `json:"email" validate:"required,email"`
}

func (r TeacherRequest) toModel(id int64) *models.Teacher {
	return &models.Teacher{ID: id, Name: r.Name, CPF: r.CPF, Phone: r.Phone, Email: r.Email}
}

// TeacherService handles teacher workflows.
type TeacherService struct {
	repo      teacherRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns a page of teachers.
func (s *TeacherService) List(ctx context.Context, page models.Page) ([]models.Teacher, *models.Pagination, error) {
	teachers, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, nil, internalError(err, "failed to list teachers")
	}
	return teachers, paginationOf(page, total), nil
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, readError(err, "teacher not found", "failed to load teacher")
	}
	return teacher, nil
}

// Create registers a teacher.
func (s *TeacherService) Create(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}

	teacher, err := s.repo.Create(ctx, req.toModel(0))
	if err != nil {
		return nil, writeError(err, "teacher not found", "teacher already exists", "failed to create teacher")
	}
	committed(ctx, s.cache, s.metrics, "professor", "create")
	return teacher, nil
}

// Update replaces a teacher.
func (s *TeacherService) Update(ctx context.Context, id int64, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}

	teacher, err := s.repo.Update(ctx, req.toModel(id))
	if err != nil {
		return nil, writeError(err, "teacher not found", "teacher already exists", "failed to update teacher")
	}
	committed(ctx, s.cache, s.metrics, "professor", "update")
	return teacher, nil
}

// Delete removes a teacher with no subject assignments.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return deleteError(err, "teacher still teaches subjects", "failed to delete teacher")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	committed(ctx, s.cache, s.metrics, "professor", "delete")
	return nil
}

// Subjects returns the teacher with every (class, subject) pair they teach.
func (s *TeacherService) Subjects(ctx context.Context, id int64) (*dto.TeacherSubjects, error) {
	key := cacheKey("professor", strconv.FormatInt(id, 10), "materias")
	return remember(ctx, s.cache, key, func(ctx context.Context) (*dto.TeacherSubjects, error) {
		teacher, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, readError(err, "teacher not found", "failed to load teacher")
		}

		subjects, err := s.repo.ListTaughtSubjects(ctx, id)
		if err != nil {
			return nil, internalError(err, "failed to list teacher subjects")
		}
		return &dto.TeacherSubjects{Teacher: *teacher, Subjects: subjects}, nil
	})
}
