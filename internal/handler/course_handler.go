package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculdade-api/internal/dto"
	"github.com/noah-isme/faculdade-api/internal/models"
	"github.com/noah-isme/faculdade-api/internal/service"
	"github.com/noah-isme/faculdade-api/pkg/config"
	"github.com/noah-isme/faculdade-api/pkg/response"
)

type courseService interface {
	List(ctx context.Context, page models.Page) ([]models.Course, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, req service.CourseRequest) (*models.Course, error)
	Update(ctx context.Context, id int64, req service.CourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
	Curriculum(ctx context.Context, id int64) (*dto.CourseCurriculum, error)
	AddSubject(ctx context.Context, courseID int64, req service.CurriculumSubjectRequest) (*dto.CourseCurriculum, error)
	RemoveSubject(ctx context.Context, courseID, subjectID int64) error
}

// CourseHandler exposes /curso endpoints including curriculum management.
type CourseHandler struct {
	service courseService
	limits  config.PaginationConfig
}

// NewCourseHandler constructs a course handler.
func NewCourseHandler(svc courseService, limits config.PaginationConfig) *CourseHandler {
	return &CourseHandler{service: svc, limits: limits}
}

// List godoc
// @Summary List courses
// @Tags Cursos
// @Produce json
// @Param offSet query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /curso [get]
func (h *CourseHandler) List(c *gin.Context) {
	page, ok := pageFromQuery(c, h.limits)
	if !ok {
		return
	}
	courses, pagination, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, pagination)
}

// Get godoc
// @Summary Get course
// @Tags Cursos
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /curso/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	course, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Create course
// @Tags Cursos
// @Accept json
// @Param payload body service.CourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /curso [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course
// @Tags Cursos
// @Accept json
// @Param id path int true "Course ID"
// @Param payload body service.CourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /curso/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req service.CourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Delete godoc
// @Summary Delete course
// @Tags Cursos
// @Param id path int true "Course ID"
// @Success 204
// @Router /curso/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Curriculum godoc
// @Summary Get course curriculum
// @Tags Cursos
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /curso/{id}/materias [get]
func (h *CourseHandler) Curriculum(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	curriculum, err := h.service.Curriculum(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, curriculum, nil)
}

// AddSubject godoc
// @Summary Add subject to course curriculum
// @Tags Cursos
// @Accept json
// @Param id path int true "Course ID"
// @Param payload body service.CurriculumSubjectRequest true "Curriculum entry"
// @Success 201 {object} response.Envelope
// @Router /curso/{id}/materias [post]
func (h *CourseHandler) AddSubject(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req service.CurriculumSubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.AddSubject(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// RemoveSubject godoc
// @Summary Remove subject from course curriculum
// @Tags Cursos
// @Param id path int true "Course ID"
// @Param idMateria path int true "Subject ID"
// @Success 204
// @Router /curso/{id}/materias/{idMateria} [delete]
func (h *CourseHandler) RemoveSubject(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	subjectID, ok := int64Param(c, "idMateria")
	if !ok {
		return
	}
	if err := h.service.RemoveSubject(c.Request.Context(), id, subjectID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
