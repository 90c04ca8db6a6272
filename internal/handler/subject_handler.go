package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculdade-api/internal/models"
	"github.com/noah-isme/faculdade-api/internal/service"
	"github.com/noah-isme/faculdade-api/pkg/config"
	"github.com/noah-isme/faculdade-api/pkg/response"
)

type subjectService interface {
	List(ctx context.Context, page models.Page) ([]models.Subject, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, req service.SubjectRequest) (*models.Subject, error)
	Update(ctx context.Context, id int64, req service.SubjectRequest) (*models.Subject, error)
	Delete(ctx context.Context, id int64) error
}

// SubjectHandler exposes /materia endpoints.
type SubjectHandler struct {
	service subjectService
	limits  config.PaginationConfig
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc subjectService, limits config.PaginationConfig) *SubjectHandler {
	return &SubjectHandler{service: svc, limits: limits}
}

// List godoc
// @Summary List subjects
// @Tags Materias
// @Success 200 {object} response.Envelope
// @Router /materia [get]
func (h *SubjectHandler) List(c *gin.Context) {
	page, ok := pageFromQuery(c, h.limits)
	if !ok {
		return
	}
	subjects, pagination, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, pagination)
}

// Get godoc
// @Summary Get subject
// @Tags Materias
// @Success 200 {object} response.Envelope
// @Router /materia/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	subject, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject, nil)
}

// Create godoc
// @Summary Create subject
// @Tags Materias
// @Param payload body service.SubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /materia [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.SubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	subject, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// Update godoc
// @Summary Update subject
// @Tags Materias
// @Param payload body service.SubjectRequest true "Subject payload"
// @Success 200 {object} response.Envelope
// @Router /materia/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req service.SubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	subject, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject, nil)
}

// Delete godoc
// @Summary Delete subject
// @Tags Materias
// @Success 204
// @Router /materia/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
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
