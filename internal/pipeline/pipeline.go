package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/qs3c/osint_go_server/config"
	"github.com/qs3c/osint_go_server/internal/analyzer"
	"github.com/qs3c/osint_go_server/internal/model"
	"github.com/qs3c/osint_go_server/internal/nlp"
	"github.com/qs3c/osint_go_server/internal/search"
)

// 两类业务失败必须区分：什么都没搜到 vs 搜到了但都不是目标人物
var (
	ErrNoResults = errors.New("no search results found for the query")
	ErrNoMatch   = errors.New("no relevant information found matching the person after strict filtering")
)

// 过滤策略，互斥选择
const (
	StrategyStrict = "strict"
	StrategyScore  = "score"
)

// 只有排名第一的结果生成 AI 摘要，其余用截断摘要占位
const snippetFallbackLen = 160

// ProgressFunc 检查点回调，百分比与阶段文案是对外契约
type ProgressFunc func(percentage int, stage string)

// Pipeline 聚合管线编排器
// 外部能力全部注入，analyzer 为 nil 表示 AI 未配置
type Pipeline struct {
	provider  search.Provider
	extractor nlp.Extractor
	dates     nlp.DateExtractor
	ai        analyzer.Analyzer
	cfg       *config.PipelineConfig
}

func New(provider search.Provider, extractor nlp.Extractor, dates nlp.DateExtractor, ai analyzer.Analyzer, cfg *config.PipelineConfig) *Pipeline {
	return &Pipeline{
		provider:  provider,
		extractor: extractor,
		dates:     dates,
		ai:        ai,
		cfg:       cfg,
	}
}

// Run 执行一次完整聚合，检查点顺序固定：
// 15 LinkedIn → 35 新闻司法 → 55 通用扫描 → 65 去重 → 70 NLP+身份过滤 →
// 85 AI 风险分析 → 88 头部摘要 → 95 时间线与来源统计
// 单个来源失败只贡献零结果，不中断管线
func (p *Pipeline) Run(ctx context.Context, name, city string, extraTerms []string, progress ProgressFunc) (*model.Profile, error) {
	queries := search.BuildQueries(name, city, extraTerms)

	var combined []model.SearchResult
	runQuery := func(q search.Query) {
		results, err := p.provider.Search(ctx, q.Text, q.MaxResults, q.Source)
		if err != nil {
			log.Printf("%s search failed, contributing zero results: %v", q.Source, err)
			return
		}
		combined = append(combined, results...)
	}

	progress(15, "Searching Professional Profiles (LinkedIn)...")
	runQuery(queries[0])

	progress(35, "Searching News & Legal Sources...")
	runQuery(queries[1])

	progress(55, "Collecting general information...")
	for _, q := range queries[2:] {
		runQuery(q)
	}

	progress(65, "Processing search results...")
	deduped := Dedupe(combined)
	if len(deduped) == 0 {
		return nil, ErrNoResults
	}

	progress(70, "Analyzing content with NLP...")
	for i := range deduped {
		deduped[i].Entities = p.extractor.Extract(deduped[i].Title + ". " + deduped[i].Snippet)
	}

	filtered := p.filter(deduped, name, city, extraTerms)
	if len(filtered) == 0 {
		return nil, ErrNoMatch
	}

	progress(85, "Performing AI risk & sentiment analysis...")
	ai := p.analyze(ctx, name, city, filtered)

	progress(88, "Generating summary...")
	p.summarize(ctx, filtered)

	progress(95, "Constructing event timeline...")
	timeline := BuildTimeline(filtered, p.dates)
	tally := TallySources(filtered)

	raw := make([]model.RawResult, 0, len(filtered))
	for _, r := range filtered {
		raw = append(raw, model.RawResult{
			Title:   r.Title,
			Snippet: r.Snippet,
			Link:    r.Link,
			Source:  r.Source,
			Summary: r.Summary,
		})
	}

	return &model.Profile{
		Name:            name,
		Location:        city,
		ShortSummary:    ai.ShortSummary,
		DetailedSummary: ai.DetailedSummary,
		RiskAnalysis:    ai.Risk,
		SourceAnalysis:  tally,
		TimelineEvents:  timeline,
		RawData:         raw,
	}, nil
}

// filter 按配置选择严格身份过滤或旧版计分过滤，二者不叠加
func (p *Pipeline) filter(results []model.SearchResult, name, city string, extraTerms []string) []model.SearchResult {
	if p.cfg.FilterStrategy == StrategyScore {
		ScoreResults(results, name, city, extraTerms)
		filtered := FilterByScore(results, p.cfg.MinScore)
		// score 路径按分数排名，头部摘要给得分最高的结果
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Score > filtered[j].Score
		})
		return filtered
	}

	matcher := NewIdentityMatcher()
	filtered := make([]model.SearchResult, 0, len(results))
	for i := range results {
		if matcher.Matches(name, &results[i]) {
			filtered = append(filtered, results[i])
		}
	}
	return filtered
}

// analyze AI 失败降级为固定结构，任务继续完成
func (p *Pipeline) analyze(ctx context.Context, name, city string, results []model.SearchResult) *model.AIAnalysis {
	if p.ai == nil {
		return analyzer.DisabledAnalysis()
	}

	snippets := make([]string, 0, len(results))
	for _, r := range results {
		snippets = append(snippets, fmt.Sprintf("Source: %s\nTitle: %s\nSnippet: %s", r.Source, r.Title, r.Snippet))
	}

	ai, err := p.ai.Analyze(ctx, name, city, snippets)
	if err != nil {
		log.Printf("AI analysis degraded: %v", err)
		return analyzer.DegradedAnalysis()
	}
	return ai
}

// summarize 只为排名第一的结果调用生成式摘要，其余截断摘要占位
func (p *Pipeline) summarize(ctx context.Context, results []model.SearchResult) {
	for i := range results {
		results[i].Summary = truncateSnippet(results[i].Snippet)
	}
	if p.ai == nil || len(results) == 0 {
		return
	}

	summary, err := p.ai.SummarizeOne(ctx, &results[0])
	if err != nil {
		log.Printf("Top result summary degraded to snippet: %v", err)
		return
	}
	if summary != "" {
		results[0].Summary = summary
	}
}

func truncateSnippet(s string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= snippetFallbackLen {
		return string(runes)
	}
	return string(runes[:snippetFallbackLen-3]) + "..."
}
