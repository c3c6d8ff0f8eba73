package dto

// CreateSearchRequest 发起检索
// ExtraTerms 逗号分隔，与原前端字段保持一致
type CreateSearchRequest struct {
	Name       string `json:"name" binding:"required"`
	City       string `json:"city" binding:"required"`
	ExtraTerms string `json:"extraTerms"`
}

type CreateSearchResponse struct {
	SearchID string `json:"search_id"`
}

// SaveReportRequest 保存前端整理好的人员档案
type SaveReportRequest struct {
	PersonData map[string]interface{} `json:"personData" binding:"required"`
}

type SaveReportResponse struct {
	ReportPath string `json:"report_path"`
	OSSURL     string `json:"oss_url,omitempty"`
}
