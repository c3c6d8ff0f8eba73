package pipeline

import (
	"log"
	"regexp"
	"strings"

	"github.com/qs3c/osint_go_server/internal/model"
	"github.com/qs3c/osint_go_server/internal/pkg/fuzzy"
)

// 模糊层级阈值，调低会放进更多误报
const (
	fuzzyWholeThreshold = 90
	fuzzyTokenThreshold = 85
)

// matchTier 身份匹配的单个层级
type matchTier struct {
	name string
	eval func(target targetName, r *model.SearchResult) bool
}

// targetName 预处理后的目标姓名
type targetName struct {
	full  string // 小写全名
	parts []string
}

func newTargetName(name string) targetName {
	lower := strings.ToLower(strings.TrimSpace(name))
	return targetName{
		full:  lower,
		parts: strings.Fields(lower),
	}
}

// IdentityMatcher 有序层级级联，命中任一层级即接受
// 实体与精确短语精度最高放最前，模糊层级靠高阈值兜底
type IdentityMatcher struct {
	tiers []matchTier
}

func NewIdentityMatcher() *IdentityMatcher {
	return &IdentityMatcher{
		tiers: []matchTier{
			{"entity", entityTier},
			{"exact_phrase", exactPhraseTier},
			{"fuzzy_whole", fuzzyWholeTier},
			{"fuzzy_token", fuzzyTokenTier},
		},
	}
}

// Matches 依次评估各层级，第一个命中的层级接受该结果
// 全部落空则记录层级轨迹并拒绝
func (m *IdentityMatcher) Matches(name string, r *model.SearchResult) bool {
	target := newTargetName(name)
	if len(target.parts) == 0 {
		return false
	}
	for _, t := range m.tiers {
		if t.eval(target, r) {
			return true
		}
	}

	names := make([]string, 0, len(m.tiers))
	for _, t := range m.tiers {
		names = append(names, t.name)
	}
	log.Printf("Skipped irrelevant result (tiers %s all rejected): %s", strings.Join(names, ","), r.Title)
	return false
}

// entityTier PERSON 实体的全部姓名片段都能对上才算命中
// 单片段姓名放宽为双向子串
func entityTier(target targetName, r *model.SearchResult) bool {
	for _, ent := range r.Entities {
		if ent.Label != model.LabelPerson {
			continue
		}
		entText := strings.ToLower(ent.Text)
		if len(target.parts) == 1 {
			part := target.parts[0]
			if strings.Contains(entText, part) || strings.Contains(part, entText) {
				return true
			}
			continue
		}

		entTokens := make(map[string]struct{})
		for _, tok := range strings.Fields(entText) {
			entTokens[tok] = struct{}{}
		}
		all := true
		for _, part := range target.parts {
			if _, ok := entTokens[part]; ok {
				continue
			}
			if strings.Contains(entText, part) {
				continue
			}
			all = false
			break
		}
		if all {
			return true
		}
	}
	return false
}

// exactPhraseTier 全名作为连续短语出现在标题或摘要里
func exactPhraseTier(target targetName, r *model.SearchResult) bool {
	quoted := make([]string, len(target.parts))
	for i, p := range target.parts {
		quoted[i] = regexp.QuoteMeta(p)
	}
	re, err := regexp.Compile(`(?i)\b` + strings.Join(quoted, `\s+`) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(r.Title) || re.MatchString(r.Snippet)
}

func fuzzyWholeTier(target targetName, r *model.SearchResult) bool {
	return fuzzy.PartialRatio(target.full, combinedText(r)) >= fuzzyWholeThreshold
}

// fuzzyTokenTier 每个姓名 token 都要独立达标，逻辑与
func fuzzyTokenTier(target targetName, r *model.SearchResult) bool {
	text := combinedText(r)
	for _, part := range target.parts {
		if fuzzy.PartialRatio(part, text) < fuzzyTokenThreshold {
			return false
		}
	}
	return true
}

func combinedText(r *model.SearchResult) string {
	return strings.ToLower(r.Title + " " + r.Snippet)
}
