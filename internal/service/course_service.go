package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/faculdade-api/internal/dto"
	"github.com/noah-isme/faculdade-api/internal/models"
	"github.com/noah-isme/faculdade-api/internal/repository"
	appErrors "github.com/noah-isme/faculdade-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, page models.Page) ([]models.Course, int, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) (*models.Course, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type curriculumRepository interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.CurriculumSubject, error)
	Add(ctx context.Context, entry models.CurriculumEntry) (*models.Course, *models.CurriculumSubject, error)
	Remove(ctx context.Context, courseID, subjectID int64) (int64, error)
}

// CourseRequest carries the writable fields of a course.
type CourseRequest struct {
	Name        string `json:"nome" validate:"required,max=70"`
	Description string `json:"descricao" validate:"required"`
	Semesters   int    `json:"qntSemestres" validate:"required,min=4,max=10"`
}

// CurriculumSubjectRequest adds a subject to a course curriculum.
type CurriculumSubjectRequest struct {
	SubjectID int64 `json:"idMateria" validate:"required"`
	Hours     int   `json:"cargaHoraria" validate:"required,min=30,max=160"`
}

// CourseService handles courses and their curricula.
type CourseService struct {
	repo       courseRepository
	curriculum curriculumRepository
	cache      *CacheService
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, curriculum curriculumRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, curriculum: curriculum, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns a page of courses.
func (s *CourseService) List(ctx context.Context, page models.Page) ([]models.Course, *models.Pagination, error) {
	courses, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, nil, internalError(err, "failed to list courses")
	}
	return courses, paginationOf(page, total), nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, readError(err, "course not found", "failed to load course")
	}
	return course, nil
}

// Create adds a course.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid course payload")
	}

	course, err := s.repo.Create(ctx, &models.Course{Name: req.Name, Description: req.Description, Semesters: req.Semesters})
	if err != nil {
		return nil, writeError(err, "course not found", "course already exists", "failed to create course")
	}
	committed(ctx, s.cache, s.metrics, "curso", "create")
	return course, nil
}

// Update replaces a course.
func (s *CourseService) Update(ctx context.Context, id int64, req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid course payload")
	}

	course, err := s.repo.Update(ctx, &models.Course{ID: id, Name: req.Name, Description: req.Description, Semesters: req.Semesters})
	if err != nil {
		return nil, writeError(err, "course not found", "course already exists", "failed to update course")
	}
	committed(ctx, s.cache, s.metrics, "curso", "update")
	return course, nil
}

// Delete removes a course with no classes. Its curriculum goes with it.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return deleteError(err, "course still has classes", "failed to delete course")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	committed(ctx, s.cache, s.metrics, "curso", "delete")
	return nil
}

// Curriculum returns the course together with its curriculum subjects.
func (s *CourseService) Curriculum(ctx context.Context, id int64) (*dto.CourseCurriculum, error) {
	key := cacheKey("curso", strconv.FormatInt(id, 10), "materias")
	return remember(ctx, s.cache, key, func(ctx context.Context) (*dto.CourseCurriculum, error) {
		course, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, readError(err, "course not found", "failed to load course")
		}

		subjects, err := s.curriculum.ListByCourse(ctx, id)
		if err != nil {
			return nil, internalError(err, "failed to list curriculum")
		}
		return &dto.CourseCurriculum{Course: *course, Subjects: subjects}, nil
	})
}

// AddSubject adds a subject to the curriculum of a course atomically and returns
// the course with the newly added subject only.
func (s *CourseService) AddSubject(ctx context.Context, courseID int64, req CurriculumSubjectRequest) (*dto.CourseCurriculum, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid curriculum payload")
	}

	entry := models.CurriculumEntry{CourseID: courseID, SubjectID: req.SubjectID, Hours: req.Hours}
	course, subject, err := s.curriculum.Add(ctx, entry)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Wrap(err, appErrors.ErrCurriculumEntryExists.Code, appErrors.ErrCurriculumEntryExists.Status, appErrors.ErrCurriculumEntryExists.Message)
		case errors.Is(err, repository.ErrForeignKey), errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Wrap(err, appErrors.ErrInvalidReference.Code, appErrors.ErrInvalidReference.Status, "course or subject does not exist")
		default:
			s.logger.Error("add curriculum subject failed", zap.Int64("course_id", courseID), zap.Int64("subject_id", req.SubjectID), zap.Error(err))
			return nil, internalError(err, "failed to add subject to curriculum")
		}
	}

	committed(ctx, s.cache, s.metrics, "grade_curso", "create")
	return &dto.CourseCurriculum{Course: *course, Subjects: []models.CurriculumSubject{*subject}}, nil
}

// RemoveSubject removes a subject from a course curriculum.
func (s *CourseService) RemoveSubject(ctx context.Context, courseID, subjectID int64) error {
	affected, err := s.curriculum.Remove(ctx, courseID, subjectID)
	if err != nil {
		return internalError(err, "failed to remove subject from curriculum")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "subject is not part of the course curriculum")
	}
	committed(ctx, s.cache, s.metrics, "grade_curso", "delete")
	return nil
}
