package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculdade-api/internal/models"
	"github.com/noah-isme/faculdade-api/pkg/config"
	appErrors "github.com/noah-isme/faculdade-api/pkg/errors"
	"github.com/noah-isme/faculdade-api/pkg/response"
)

// int64Param parses a numeric path parameter. On failure it writes a 400
// response and returns false.
func int64Param(c *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid "+name+" parameter"))
		return 0, false
	}
	return value, true
}

// bindJSON decodes the request body. On failure it writes a 400 response and
// returns false.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return false
	}
	return true
}

// pageFromQuery reads offSet and limit. Values that are not integers get a
// 400 response and false. Negative offsets become zero, a non-positive limit
// takes the default and limits above the maximum are capped.
func pageFromQuery(c *gin.Context, limits config.PaginationConfig) (models.Page, bool) {
	page := models.Page{Offset: 0, Limit: limits.DefaultLimit}
	if page.Limit <= 0 {
		page.Limit = 10
	}

	offset, ok := intQuery(c, "offSet")
	if !ok {
		return page, false
	}
	if offset > 0 {
		page.Offset = offset
	}

	limit, ok := intQuery(c, "limit")
	if !ok {
		return page, false
	}
	if limit > 0 {
		page.Limit = limit
	}
	if limits.MaxLimit > 0 && page.Limit > limits.MaxLimit {
		page.Limit = limits.MaxLimit
	}
	return page, true
}

// intQuery parses an optional integer query parameter; absent means zero.
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid "+name+" query parameter"))
		return 0, false
	}
	return value, true
}
