package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/osint_go_server/internal/model/dto"
	"github.com/qs3c/osint_go_server/internal/pkg/response"
	"github.com/qs3c/osint_go_server/internal/service"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Create 发起一次聚合检索
// POST /api/v1/searches
func (h *SearchHandler) Create(c *gin.Context) {
	var req dto.CreateSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "name 和 city 为必填项")
		return
	}

	searchID, err := h.searchService.Submit(c.Request.Context(), req.Name, req.City, req.ExtraTerms)
	if err != nil {
		response.ServerError(c, "检索任务提交失败")
		return
	}

	response.Success(c, dto.CreateSearchResponse{SearchID: searchID})
}

// GetProgress 轮询检索进度
// GET /api/v1/searches/:id/progress
func (h *SearchHandler) GetProgress(c *gin.Context) {
	searchID := c.Param("id")

	job, err := h.searchService.Poll(searchID)
	if err != nil {
		if errors.Is(err, service.ErrSearchNotFound) {
			response.NotFoundError(c, "检索任务不存在")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, job)
}
