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

type studentService interface {
	List(ctx context.Context, page models.Page) ([]models.Student, *models.Pagination, error)
	Get(ctx context.Context, rm int64) (*models.Student, error)
	Create(ctx context.Context, req service.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, rm int64, req service.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, rm int64) error
	Exams(ctx context.Context, rm int64) (*dto.StudentExams, error)
}

// StudentHandler exposes /aluno endpoints.
type StudentHandler struct {
	service studentService
	limits  config.PaginationConfig
}

// NewStudentHandler constructs a student handler.
func NewStudentHandler(svc studentService, limits config.PaginationConfig) *StudentHandler {
	return &StudentHandler{service: svc, limits: limits}
}

// List godoc
// @Summary List students
// @Tags Alunos
// @Produce json
// @Param offSet query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /aluno [get]
func (h *StudentHandler) List(c *gin.Context) {
	page, ok := pageFromQuery(c, h.limits)
	if !ok {
		return
	}
	students, pagination, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Get godoc
// @Summary Get student by RM
// @Tags Alunos
// @Produce json
// @Param rm path int true "Student RM"
// @Success 200 {object} response.Envelope
// @Router /aluno/{rm} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	rm, ok := int64Param(c, "rm")
	if !ok {
		return
	}
	student, err := h.service.Get(c.Request.Context(), rm)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Register student
// @Tags Alunos
// @Accept json
// @Produce json
// @Param payload body service.StudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /aluno [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.StudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student
// @Tags Alunos
// @Accept json
// @Produce json
// @Param rm path int true "Student RM"
// @Param payload body service.StudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Router /aluno/{rm} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	rm, ok := int64Param(c, "rm")
	if !ok {
		return
	}
	var req service.StudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.service.Update(c.Request.Context(), rm, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete godoc
// @Summary Delete student
// @Tags Alunos
// @Param rm path int true "Student RM"
// @Success 204
// @Router /aluno/{rm} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	rm, ok := int64Param(c, "rm")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), rm); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Exams godoc
// @Summary List evaluations taken by a student
// @Tags Alunos
// @Produce json
// @Param rm path int true "Student RM"
// @Success 200 {object} response.Envelope
// @Router /aluno/{rm}/provas [get]
func (h *StudentHandler) Exams(c *gin.Context) {
	rm, ok := int64Param(c, "rm")
	if !ok {
		return
	}
	exams, err := h.service.Exams(c.Request.Context(), rm)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exams, nil)
}
