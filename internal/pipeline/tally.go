package pipeline

import "github.com/qs3c/osint_go_server/internal/model"

// TallySources 按固定来源顺序统计结果分布
// 没出现的来源也输出 count 0，保证前端图表形状稳定
func TallySources(results []model.SearchResult) []model.SourceCount {
	counts := make(map[model.Source]int, len(model.AllSources))
	for _, r := range results {
		counts[r.Source]++
	}

	tally := make([]model.SourceCount, 0, len(model.AllSources))
	for _, s := range model.AllSources {
		tally = append(tally, model.SourceCount{Name: s, Count: counts[s]})
	}
	return tally
}
