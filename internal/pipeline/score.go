package pipeline

import (
	"log"
	"strings"

	"github.com/qs3c/osint_go_server/internal/model"
)

// ScoreResults 旧版计分过滤的打分阶段，就地写入 Score
// 姓名片段、城市、额外关键词各 +1，LinkedIn 个人主页链接额外 +1
func ScoreResults(results []model.SearchResult, name, city string, extraTerms []string) {
	nameParts := strings.Fields(strings.ToLower(name))
	cityLower := strings.ToLower(strings.TrimSpace(city))

	terms := make([]string, 0, len(extraTerms))
	for _, t := range extraTerms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}

	for i := range results {
		r := &results[i]
		text := strings.ToLower(r.Title + " " + r.Snippet)
		score := 0
		for _, part := range nameParts {
			if strings.Contains(text, part) {
				score++
			}
		}
		if cityLower != "" && strings.Contains(text, cityLower) {
			score++
		}
		for _, term := range terms {
			if strings.Contains(text, term) {
				score++
			}
		}
		if r.Source == model.SourceLinkedIn && strings.Contains(strings.ToLower(r.Link), "linkedin.com/in") {
			score++
		}
		r.Score = score
	}
}

// FilterByScore 保留达到阈值的结果
func FilterByScore(results []model.SearchResult, minScore int) []model.SearchResult {
	filtered := make([]model.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Score >= minScore {
			filtered = append(filtered, r)
		}
	}
	log.Printf("Filtered: %d / %d results (score >= %d)", len(filtered), len(results), minScore)
	return filtered
}
