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

type evaluationService interface {
	List(ctx context.Context, page models.Page) ([]models.EvaluationDetail, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.EvaluationDetail, error)
	Create(ctx context.Context, req service.CreateEvaluationRequest) (*models.EvaluationDetail, error)
	Update(ctx context.Context, id int64, req service.UpdateEvaluationRequest) (*models.EvaluationDetail, error)
	Delete(ctx context.Context, id int64) error
}

// EvaluationHandler exposes /avaliacao endpoints.
type EvaluationHandler struct {
	service evaluationService
	limits  config.PaginationConfig
}

// NewEvaluationHandler constructs an evaluation handler.
func NewEvaluationHandler(svc evaluationService, limits config.PaginationConfig) *EvaluationHandler {
	return &EvaluationHandler{service: svc, limits: limits}
}

// List godoc
// @Summary List evaluations
// @Tags Avaliacoes
// @Success 200 {object} response.Envelope
// @Router /avaliacao [get]
func (h *EvaluationHandler) List(c *gin.Context) {
	page, ok := pageFromQuery(c, h.limits)
	if !ok {
		return
	}
	evaluations, pagination, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluations, pagination)
}

// Get godoc
// @Summary Get evaluation
// @Tags Avaliacoes
// @Success 200 {object} response.Envelope
// @Router /avaliacao/{id} [get]
func (h *EvaluationHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	evaluation, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluation, nil)
}

// Create godoc
// @Summary Schedule evaluation
// @Description The subject must already be taught in the class.
// @Tags Avaliacoes
// @Param payload body service.CreateEvaluationRequest true "Evaluation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /avaliacao [post]
func (h *EvaluationHandler) Create(c *gin.Context) {
	var req service.CreateEvaluationRequest
	if !bindJSON(c, &req) {
		return
	}
	evaluation, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, evaluation)
}

// Update godoc
// @Summary Update evaluation date and maximum score
// @Tags Avaliacoes
// @Param payload body service.UpdateEvaluationRequest true "Evaluation payload"
// @Success 200 {object} response.Envelope
// @Router /avaliacao/{id} [put]
func (h *EvaluationHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req service.UpdateEvaluationRequest
	if !bindJSON(c, &req) {
		return
	}
	evaluation, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluation, nil)
}

// Delete godoc
// @Summary Delete evaluation
// @Tags Avaliacoes
// @Success 204
// @Router /avaliacao/{id} [delete]
func (h *EvaluationHandler) Delete(c *gin.Context) {
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
