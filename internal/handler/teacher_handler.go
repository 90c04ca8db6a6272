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

type teacherService interface {
	List(ctx context.Context, page models.Page) ([]models.Teacher, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.Teacher, error)
	Create(ctx context.Context, req service.TeacherRequest) (*models.Teacher, error)
	Update(ctx context.Context, id int64, req service.TeacherRequest) (*models.Teacher, error)
	Delete(ctx context.Context, id int64) error
	Subjects(ctx context.Context, id int64) (*dto.TeacherSubjects, error)
}

// TeacherHandler exposes /professor endpoints.
type TeacherHandler struct {
	service teacherService
	limits  config.PaginationConfig
}

// NewTeacherHandler constructs a teacher handler.
func NewTeacherHandler(svc teacherService, limits config.PaginationConfig) *TeacherHandler {
	return &TeacherHandler{service: svc, limits: limits}
}

// List godoc
// @Summary List teachers
// @Tags Professores
// @Param offSet query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /professor [get]
func (h *TeacherHandler) List(c *gin.Context) {
	page, ok := pageFromQuery(c, h.limits)
	if !ok {
		return
	}
	teachers, pagination, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, pagination)
}

// Get godoc
// @Summary Get teacher
// @Tags Professores
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /professor/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	teacher, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// Create godoc
// @Summary Register teacher
// @Tags Professores
// @Param payload body service.TeacherRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Router /professor [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	var req service.TeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	teacher, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// Update godoc
// @Summary Update teacher
// @Tags Professores
// @Param id path int true "Teacher ID"
// @Param payload body service.TeacherRequest true "Teacher payload"
// @Success 200 {object} response.Envelope
// @Router /professor/{id} [put]
func (h *TeacherHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req service.TeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	teacher, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// Delete godoc
// @Summary Delete teacher
// @Tags Professores
// @Param id path int true "Teacher ID"
// @Success 204
// @Router /professor/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
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

// Subjects godoc
// @Summary List the classes and subjects a teacher teaches
// @Tags Professores
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /professor/{id}/materias [get]
func (h *TeacherHandler) Subjects(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	subjects, err := h.service.Subjects(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}
