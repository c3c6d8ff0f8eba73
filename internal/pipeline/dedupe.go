package pipeline

import "github.com/qs3c/osint_go_server/internal/model"

// Dedupe 按 Link 去重，保留首次出现的结果
// 空 Link 的结果直接丢弃，不参与去重
func Dedupe(results []model.SearchResult) []model.SearchResult {
	seen := make(map[string]struct{}, len(results))
	deduped := make([]model.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Link == "" {
			continue
		}
		if _, ok := seen[r.Link]; ok {
			continue
		}
		seen[r.Link] = struct{}{}
		deduped = append(deduped, r)
	}
	return deduped
}
