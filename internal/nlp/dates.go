package nlp

import (
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"

	"github.com/qs3c/osint_go_server/internal/model"
)

// DateExtractor 从检索结果中提取事件日期
type DateExtractor interface {
	Extract(r *model.SearchResult) (time.Time, bool)
}

// FuzzyDateExtractor 结构化时间提示优先，其次对正文做容错扫描
type FuzzyDateExtractor struct{}

func NewFuzzyDateExtractor() *FuzzyDateExtractor {
	return &FuzzyDateExtractor{}
}

// 滑动窗口最多拼接的 token 数，"May 5, 2023" 这类日期占 3 个 token
const maxDateTokens = 4

// Extract 提取优先级：metatags 发布时间 > newsarticle 发布日期 > 正文模糊解析
// 全部失败返回 false，调用方将该结果排除出时间线
func (e *FuzzyDateExtractor) Extract(r *model.SearchResult) (time.Time, bool) {
	if t, ok := parsePlausible(r.PublishedTime); ok {
		return t, true
	}
	if t, ok := parsePlausible(r.DatePublished); ok {
		return t, true
	}
	return scanText(r.Title + " " + r.Snippet)
}

// scanText 在自由文本里寻找第一个可解析的日期片段
// 日期周围允许存在无关 token
func scanText(text string) (time.Time, bool) {
	tokens := strings.Fields(text)
	for i := range tokens {
		// 日期片段至少包含一个数字，纯文字窗口直接跳过
		if !containsDigit(tokens[i]) && (i+1 >= len(tokens) || !containsDigit(tokens[i+1])) {
			continue
		}
		max := maxDateTokens
		if rest := len(tokens) - i; rest < max {
			max = rest
		}
		// 先试长窗口，避免 "May 5, 2023" 被截成 "5, 2023"
		for n := max; n >= 1; n-- {
			candidate := strings.Join(tokens[i:i+n], " ")
			if t, ok := parsePlausible(candidate); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func parsePlausible(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !containsDigit(s) {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	// 过滤把普通数字当成时间戳/远古日期的误判
	if t.Year() < 1900 || t.Year() > time.Now().Year()+1 {
		return time.Time{}, false
	}
	return t, true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
