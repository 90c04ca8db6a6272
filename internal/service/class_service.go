package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/faculdade-api/internal/dto"
	"github.com/noah-isme/faculdade-api/internal/models"
	appErrors "github.com/noah-isme/faculdade-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context, page models.Page) ([]models.Class, int, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, class *models.Class) (*models.Class, error)
	Update(ctx context.Context, class *models.Class) (*models.Class, error)
	Delete(ctx context.Context, id string) (int64, error)
	ListTaughtSubjects(ctx context.Context, classID string) ([]models.TeacherSubject, error)
	ListEvaluations(ctx context.Context, classID string) ([]models.EvaluationSummary, error)
}

type taughtSubjectRepository interface {
	FindID(ctx context.Context, classID string, subjectID int64) (int64, bool, error)
	Assign(ctx context.Context, assignment *models.TaughtSubject) (*models.TaughtSubject, error)
	Remove(ctx context.Context, classID string, subjectID int64) (int64, error)
}

// CreateClassRequest registers a class under a caller-chosen key.
type CreateClassRequest struct {
	ID       string `json:"id" validate:"required,max=10"`
	CourseID int64  `json:"idCurso" validate:"required"`
	Period   string `json:"periodo" validate:"required,oneof=Noturno Matutino"`
	Format   string `json:"formato" validate:"required,oneof=EAD Presencial Semi-Presencial"`
}

// UpdateClassRequest carries the mutable fields of a class.
type UpdateClassRequest struct {
	CourseID int64  `json:"idCurso" validate:"required"`
	Period   string `json:"periodo" validate:"required,oneof=Noturno Matutino"`
	Format   string `json:"formato" validate:"required,oneof=EAD Presencial Semi-Presencial"`
}

// AssignSubjectRequest assigns a subject and its teacher to a class.
type AssignSubjectRequest struct {
	SubjectID int64 `json:"idMateria" validate:"required"`
	TeacherID int64 `json:"idProfessor" validate:"required"`
}

// ClassService handles classes and the subjects taught in them. Every class
// key is normalized to upper case before reaching storage.
type ClassService struct {
	repo      classRepository
	taught    taughtSubjectRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService.
func NewClassService(repo classRepository, taught taughtSubjectRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, taught: taught, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns a page of classes.
func (s *ClassService) List(ctx context.Context, page models.Page) ([]models.Class, *models.Pagination, error) {
	classes, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, nil, internalError(err, "failed to list classes")
	}
	return classes, paginationOf(page, total), nil
}

// Get returns a class by key, case-insensitively.
func (s *ClassService) Get(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, models.NormalizeClassID(id))
	if err != nil {
		return nil, readError(err, "class not found", "failed to load class")
	}
	return class, nil
}

// Create registers a class.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	req.ID = models.NormalizeClassID(req.ID)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}

	class, err := s.repo.Create(ctx, &models.Class{ID: req.ID, CourseID: req.CourseID, Period: req.Period, Format: req.Format})
	if err != nil {
		return nil, writeError(err, "class not found", "class already exists", "failed to create class")
	}
	committed(ctx, s.cache, s.metrics, "turma", "create")
	return class, nil
}

// Update replaces the mutable fields of a class.
func (s *ClassService) Update(ctx context.Context, id string, req UpdateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}

	class := &models.Class{ID: models.NormalizeClassID(id), CourseID: req.CourseID, Period: req.Period, Format: req.Format}
	updated, err := s.repo.Update(ctx, class)
	if err != nil {
		return nil, writeError(err, "class not found", "class already exists", "failed to update class")
	}
	committed(ctx, s.cache, s.metrics, "turma", "update")
	return updated, nil
}

// Delete removes a class with no students or taught subjects.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, models.NormalizeClassID(id))
	if err != nil {
		return deleteError(err, "class still has students or subjects", "failed to delete class")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	committed(ctx, s.cache, s.metrics, "turma", "delete")
	return nil
}

// Subjects returns the class with the subjects taught in it and their teachers.
func (s *ClassService) Subjects(ctx context.Context, id string) (*dto.ClassSubjects, error) {
	id = models.NormalizeClassID(id)
	return remember(ctx, s.cache, cacheKey("turma", id, "materias"), func(ctx context.Context) (*dto.ClassSubjects, error) {
		return s.loadSubjects(ctx, id)
	})
}

func (s *ClassService) loadSubjects(ctx context.Context, id string) (*dto.ClassSubjects, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, readError(err, "class not found", "failed to load class")
	}

	subjects, err := s.repo.ListTaughtSubjects(ctx, id)
	if err != nil {
		return nil, internalError(err, "failed to list class subjects")
	}
	return &dto.ClassSubjects{Class: *class, Subjects: subjects}, nil
}

// Evaluations returns the evaluations applied in a class.
func (s *ClassService) Evaluations(ctx context.Context, id string) (*dto.ClassEvaluations, error) {
	id = models.NormalizeClassID(id)
	return remember(ctx, s.cache, cacheKey("turma", id, "avaliacoes"), func(ctx context.Context) (*dto.ClassEvaluations, error) {
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return nil, internalError(err, "failed to load class")
		}
		if !exists {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}

		evaluations, err := s.repo.ListEvaluations(ctx, id)
		if err != nil {
			return nil, internalError(err, "failed to list class evaluations")
		}
		return &dto.ClassEvaluations{ClassID: id, Evaluations: evaluations}, nil
	})
}

// AssignSubject records that a teacher teaches a subject in the class and
// returns the refreshed list of taught subjects.
func (s *ClassService) AssignSubject(ctx context.Context, id string, req AssignSubjectRequest) (*dto.ClassSubjects, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid subject assignment payload")
	}

	id = models.NormalizeClassID(id)
	assignment := &models.TaughtSubject{ClassID: id, SubjectID: req.SubjectID, TeacherID: req.TeacherID}
	if _, err := s.taught.Assign(ctx, assignment); err != nil {
		return nil, writeError(err, "class not found", "subject is already taught in the class", "failed to assign subject")
	}
	committed(ctx, s.cache, s.metrics, "materia_ministrada", "create")

	return s.loadSubjects(ctx, id)
}

// RemoveSubject stops teaching a subject in the class.
func (s *ClassService) RemoveSubject(ctx context.Context, id string, subjectID int64) error {
	affected, err := s.taught.Remove(ctx, models.NormalizeClassID(id), subjectID)
	if err != nil {
		return deleteError(err, "subject has evaluations in the class", "failed to remove subject")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "subject is not taught in the class")
	}
	committed(ctx, s.cache, s.metrics, "materia_ministrada", "delete")
	return nil
}
