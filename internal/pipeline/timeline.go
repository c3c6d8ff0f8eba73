package pipeline

import (
	"sort"

	"github.com/qs3c/osint_go_server/internal/model"
	"github.com/qs3c/osint_go_server/internal/nlp"
)

// BuildTimeline 为每条结果提取日期并按时间倒序排列
// 提取失败的结果不进时间线，但仍保留在 raw_data 里
func BuildTimeline(results []model.SearchResult, dates nlp.DateExtractor) []model.TimelineEvent {
	events := make([]model.TimelineEvent, 0, len(results))
	for i := range results {
		t, ok := dates.Extract(&results[i])
		if !ok {
			continue
		}
		events = append(events, model.TimelineEvent{
			Date:   t.Format("2006-01-02"),
			Title:  results[i].Title,
			Source: results[i].Source,
		})
	}
	// 日期格式固定，字符串倒序即时间倒序；稳定排序保住同日事件的输入顺序
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date > events[j].Date
	})
	return events
}
