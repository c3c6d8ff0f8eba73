package testutil

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/osint_go_server/internal/model"
)

// CreateTestReport 插入一条报告记录
func CreateTestReport(t *testing.T, db *gorm.DB, name, city string) *model.Report {
	t.Helper()

	report := &model.Report{
		Name:           name,
		City:           city,
		RiskScore:      3,
		SentimentScore: 0.2,
		ResultCount:    5,
		FilePath:       "reports/" + name + "_report_20260101_120000.json",
		CreatedAt:      time.Now(),
	}
	if err := db.Create(report).Error; err != nil {
		t.Fatalf("failed to create test report: %v", err)
	}
	return report
}

// NewTestResult 构造一条检索命中
func NewTestResult(source model.Source, title, link, snippet string) model.SearchResult {
	return model.SearchResult{
		Source:  source,
		Title:   title,
		Link:    link,
		Snippet: snippet,
	}
}

// NewTestProfile 构造一份最小可用的人员档案
func NewTestProfile(name, city string) *model.Profile {
	return &model.Profile{
		Name:            name,
		Location:        city,
		ShortSummary:    "Test summary.",
		DetailedSummary: "Detailed test summary.",
		RiskAnalysis: model.RiskAnalysis{
			RiskScore:              3,
			RiskJustification:      "Low risk.",
			SentimentScore:         0.2,
			SentimentJustification: "Mildly positive.",
		},
		SourceAnalysis: []model.SourceCount{{Name: model.SourceGeneral, Count: 1}},
		RawData: []model.RawResult{
			{
				Title:   name + " - profile",
				Snippet: name + " lives in " + city + ".",
				Link:    "https://example.com/profile",
				Source:  model.SourceGeneral,
			},
		},
	}
}
