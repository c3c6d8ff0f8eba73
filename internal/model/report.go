package model

import (
	"time"
)

// Report 已完成检索的落库记录
type Report struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:200;not null;index" json:"name"`
	City           string    `gorm:"size:200;not null" json:"city"`
	RiskScore      int       `json:"risk_score"`
	SentimentScore float64   `json:"sentiment_score"`
	ResultCount    int       `json:"result_count"`
	FilePath       string    `gorm:"size:500" json:"file_path"`
	OSSURL         string    `gorm:"size:500" json:"oss_url,omitempty"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}
