package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/osint_go_server/internal/model/dto"
	"github.com/qs3c/osint_go_server/internal/pkg/response"
	"github.com/qs3c/osint_go_server/internal/repository"
	"github.com/qs3c/osint_go_server/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Save 保存前端整理好的人员档案
// POST /api/v1/reports
func (h *ReportHandler) Save(c *gin.Context) {
	var req dto.SaveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "personData 为必填项")
		return
	}

	rec, err := h.reportService.SavePersonData(req.PersonData)
	if err != nil {
		response.ServerError(c, "报告保存失败")
		return
	}

	response.Success(c, dto.SaveReportResponse{
		ReportPath: rec.FilePath,
		OSSURL:     rec.OSSURL,
	})
}

// List 分页查询报告记录
// GET /api/v1/reports?page=1&page_size=20&name=xxx
func (h *ReportHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	name := c.Query("name")

	reports, total, err := h.reportService.List(page, pageSize, name)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, reports)
}

// Get 按 ID 查询报告记录
// GET /api/v1/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的报告 ID")
		return
	}

	report, err := h.reportService.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			response.NotFoundError(c, "报告不存在")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, report)
}
