package service

import (
	"log"
	"math"
	"os"
	"time"

	"github.com/qs3c/osint_go_server/internal/model"
	"github.com/qs3c/osint_go_server/internal/pkg/oss"
	"github.com/qs3c/osint_go_server/internal/report"
	"github.com/qs3c/osint_go_server/internal/repository"
)

// ReportService 报告落盘、可选 OSS 上传与落库
type ReportService struct {
	store       *report.Store
	repo        *repository.ReportRepository
	ossClient   *oss.Client // nil 时只存本地
	uploadToOSS bool
}

func NewReportService(store *report.Store, repo *repository.ReportRepository, ossClient *oss.Client, uploadToOSS bool) *ReportService {
	return &ReportService{
		store:       store,
		repo:        repo,
		ossClient:   ossClient,
		uploadToOSS: uploadToOSS,
	}
}

// SaveProfile 持久化管线产出的人员档案
func (s *ReportService) SaveProfile(profile *model.Profile) (*model.Report, error) {
	return s.persist(profile.Name, profile.Location, profile,
		profile.RiskAnalysis.RiskScore, profile.RiskAnalysis.SentimentScore, len(profile.RawData))
}

// SavePersonData 持久化前端整理好的档案（字段宽松解析）
func (s *ReportService) SavePersonData(personData map[string]interface{}) (*model.Report, error) {
	name, _ := personData["name"].(string)
	city, _ := personData["location"].(string)

	riskScore := 0
	sentiment := 0.0
	if risk, ok := personData["riskAnalysis"].(map[string]interface{}); ok {
		if v, ok := risk["riskScore"].(float64); ok {
			riskScore = int(math.Round(v))
		}
		if v, ok := risk["sentimentScore"].(float64); ok {
			sentiment = v
		}
	}

	resultCount := 0
	if raw, ok := personData["raw_data"].([]interface{}); ok {
		resultCount = len(raw)
	}

	return s.persist(name, city, personData, riskScore, sentiment, resultCount)
}

func (s *ReportService) persist(name, city string, payload interface{}, riskScore int, sentiment float64, resultCount int) (*model.Report, error) {
	filePath, err := s.store.Save(name, payload)
	if err != nil {
		return nil, err
	}

	rec := &model.Report{
		Name:           name,
		City:           city,
		RiskScore:      riskScore,
		SentimentScore: sentiment,
		ResultCount:    resultCount,
		FilePath:       filePath,
		CreatedAt:      time.Now(),
	}

	if s.uploadToOSS && s.ossClient != nil {
		data, readErr := os.ReadFile(filePath)
		if readErr == nil {
			url, upErr := s.ossClient.UploadReport(name, data)
			if upErr != nil {
				// OSS 失败不阻塞保存，本地文件已经落盘
				log.Printf("Report %s: OSS upload failed: %v", filePath, upErr)
			} else {
				rec.OSSURL = url
			}
		}
	}

	if err := s.repo.Create(rec); err != nil {
		return nil, err
	}

	log.Printf("Report saved: %s (risk=%d results=%d)", filePath, riskScore, resultCount)
	return rec, nil
}

// List 分页查询报告记录
func (s *ReportService) List(page, pageSize int, name string) ([]*model.Report, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.List(page, pageSize, name)
}

// Get 按 ID 查询报告记录
func (s *ReportService) Get(id int64) (*model.Report, error) {
	return s.repo.GetByID(id)
}
