package model

import (
	"time"
)

// 任务状态
const (
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusError     = "error"
)

// SearchJob 一次进行中的聚合检索的进度快照
// percentage 在成功路径上单调不减；status 进入 completed/error 后不再变化
type SearchJob struct {
	Percentage int      `json:"percentage"`
	Stage      string   `json:"stage"`
	Status     string   `json:"status"`
	Result     *Profile `json:"result"`
	Error      string   `json:"error,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Terminal 任务是否已结束
func (j *SearchJob) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusError
}
