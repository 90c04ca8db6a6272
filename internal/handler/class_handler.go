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

type classService interface {
	List(ctx context.Context, page models.Page) ([]models.Class, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Class, error)
	Create(ctx context.Context, req service.CreateClassRequest) (*models.Class, error)
	Update(ctx context.Context, id string, req service.UpdateClassRequest) (*models.Class, error)
	Delete(ctx context.Context, id string) error
	Subjects(ctx context.Context, id string) (*dto.ClassSubjects, error)
	Evaluations(ctx context.Context, id string) (*dto.ClassEvaluations, error)
	AssignSubject(ctx context.Context, id string, req service.AssignSubjectRequest) (*dto.ClassSubjects, error)
	RemoveSubject(ctx context.Context, id string, subjectID int64) error
}

// ClassHandler exposes /turma endpoints. Class keys in the path are matched
// case-insensitively.
type ClassHandler struct {
	service classService
	limits  config.PaginationConfig
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc classService, limits config.PaginationConfig) *ClassHandler {
	return &ClassHandler{service: svc, limits: limits}
}

// List godoc
// @Summary List classes
// @Tags Turmas
// @Param offSet query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /turma [get]
func (h *ClassHandler) List(c *gin.Context) {
	page, ok := pageFromQuery(c, h.limits)
	if !ok {
		return
	}
	classes, pagination, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, pagination)
}

// Get godoc
// @Summary Get class
// @Tags Turmas
// @Param id path string true "Class key"
// @Success 200 {object} response.Envelope
// @Router /turma/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class, nil)
}

// Create godoc
// @Summary Create class
// @Tags Turmas
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /turma [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.CreateClassRequest
	if !bindJSON(c, &req) {
		return
	}
	class, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Update godoc
// @Summary Update class
// @Tags Turmas
// @Param id path string true "Class key"
// @Param payload body service.UpdateClassRequest true "Class payload"
// @Success 200 {object} response.Envelope
// @Router /turma/{id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	var req service.UpdateClassRequest
	if !bindJSON(c, &req) {
		return
	}
	class, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class, nil)
}

// Delete godoc
// @Summary Delete class
// @Tags Turmas
// @Param id path string true "Class key"
// @Success 204
// @Router /turma/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Subjects godoc
// @Summary List subjects taught in a class
// @Tags Turmas
// @Param id path string true "Class key"
// @Success 200 {object} response.Envelope
// @Router /turma/{id}/materias [get]
func (h *ClassHandler) Subjects(c *gin.Context) {
	subjects, err := h.service.Subjects(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// AssignSubject godoc
// @Summary Assign a subject and teacher to a class
// @Tags Turmas
// @Param id path string true "Class key"
// @Param payload body service.AssignSubjectRequest true "Assignment"
// @Success 201 {object} response.Envelope
// @Router /turma/{id}/materias [post]
func (h *ClassHandler) AssignSubject(c *gin.Context) {
	var req service.AssignSubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	subjects, err := h.service.AssignSubject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subjects)
}

// RemoveSubject godoc
// @Summary Stop teaching a subject in a class
// @Tags Turmas
// @Param id path string true "Class key"
// @Param idMateria path int true "Subject ID"
// @Success 204
// @Router /turma/{id}/materias/{idMateria} [delete]
func (h *ClassHandler) RemoveSubject(c *gin.Context) {
	subjectID, ok := int64Param(c, "idMateria")
	if !ok {
		return
	}
	if err := h.service.RemoveSubject(c.Request.Context(), c.Param("id"), subjectID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Evaluations godoc
// @Summary List evaluations applied in a class
// @Tags Turmas
// @Param id path string true "Class key"
// @Success 200 {object} response.Envelope
// @Router /turma/{id}/avaliacoes [get]
func (h *ClassHandler) Evaluations(c *gin.Context) {
	evaluations, err := h.service.Evaluations(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluations, nil)
}
