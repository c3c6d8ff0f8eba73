package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/qs3c/osint_go_server/internal/model"
	"github.com/qs3c/osint_go_server/internal/pkg/queue"
	"github.com/qs3c/osint_go_server/internal/progress"
)

var ErrSearchNotFound = errors.New("search job not found")

// SearchService 接收检索请求并投递到队列，查询走进度追踪器
type SearchService struct {
	queue   *queue.Queue
	tracker *progress.Tracker
}

func NewSearchService(q *queue.Queue, tracker *progress.Tracker) *SearchService {
	return &SearchService{
		queue:   q,
		tracker: tracker,
	}
}

// Submit 注册任务并入队，返回任务 key
// key 格式 <name>_<city>_<unix 秒>，与轮询接口共用
func (s *SearchService) Submit(ctx context.Context, name, city, extraTerms string) (string, error) {
	name = strings.TrimSpace(name)
	city = strings.TrimSpace(city)
	if name == "" || city == "" {
		return "", errors.New("name and city are required")
	}

	key := fmt.Sprintf("%s_%s_%d", name, city, time.Now().Unix())
	s.tracker.Create(key)

	msg := &queue.JobMessage{
		JobKey:     key,
		Name:       name,
		City:       city,
		ExtraTerms: splitExtraTerms(extraTerms),
	}
	if err := s.queue.Push(ctx, msg); err != nil {
		s.tracker.Fail(key, "failed to enqueue search job")
		return "", fmt.Errorf("failed to enqueue search job: %w", err)
	}

	log.Printf("Search %s: queued (name=%s city=%s terms=%d)", key, name, city, len(msg.ExtraTerms))
	return key, nil
}

// Poll 查询任务进度快照
func (s *SearchService) Poll(key string) (model.SearchJob, error) {
	job, ok := s.tracker.Get(key)
	if !ok {
		return model.SearchJob{}, ErrSearchNotFound
	}
	return job, nil
}

// splitExtraTerms 逗号分隔的附加关键词，去掉空白项
func splitExtraTerms(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var terms []string
	for _, part := range strings.Split(raw, ",") {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}
