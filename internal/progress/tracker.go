package progress

import (
	"sync"
	"time"

	"github.com/qs3c/osint_go_server/internal/model"
)

// Tracker 以任务 key 为索引的进度存储
// 写入方是执行管线的单个 worker，读取方是任意数量的轮询请求，
// Get 返回整体快照，读方不会看到半新半旧的字段组合。
// 终态（completed/error）只写一次，之后的更新全部丢弃。
type Tracker struct {
	mu   sync.RWMutex
	jobs map[string]*model.SearchJob
}

func NewTracker() *Tracker {
	return &Tracker{
		jobs: make(map[string]*model.SearchJob),
	}
}

// Create 注册新任务，初始 running / 0%
func (t *Tracker) Create(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.jobs[key] = &model.SearchJob{
		Percentage: 0,
		Stage:      "Initializing search...",
		Status:     model.JobStatusRunning,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Update 合并进度字段，未知 key 或已终态时为空操作
// （任务句柄被丢弃后迟到的更新不应报错，也不应复活任务）
func (t *Tracker) Update(key string, percentage int, stage string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[key]
	if !ok || job.Terminal() {
		return
	}
	job.Percentage = percentage
	job.Stage = stage
	job.UpdatedAt = time.Now()
}

// Get 返回任务快照
func (t *Tracker) Get(key string) (model.SearchJob, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	job, ok := t.jobs[key]
	if !ok {
		return model.SearchJob{}, false
	}
	return *job, true
}

// Complete 写入最终结果并置为终态
func (t *Tracker) Complete(key string, result *model.Profile) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[key]
	if !ok || job.Terminal() {
		return
	}
	job.Percentage = 100
	job.Stage = "Complete!"
	job.Status = model.JobStatusCompleted
	job.Result = result
	job.UpdatedAt = time.Now()
}

// Fail 置为失败终态，percentage 保持最后一个成功检查点的值
func (t *Tracker) Fail(key string, errMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[key]
	if !ok || job.Terminal() {
		return
	}
	job.Stage = "Search failed"
	job.Status = model.JobStatusError
	job.Error = errMsg
	job.UpdatedAt = time.Now()
}

// Sweep 清理超过 maxAge 的终态任务，返回清理数量
// 运行中的任务不论多旧都保留
func (t *Tracker) Sweep(maxAge time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for key, job := range t.jobs {
		if job.Terminal() && job.UpdatedAt.Before(cutoff) {
			delete(t.jobs, key)
			cleaned++
		}
	}
	return cleaned
}

// Len 当前跟踪的任务数
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.jobs)
}
