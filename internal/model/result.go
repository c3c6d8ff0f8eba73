package model

// Source 检索来源分类
type Source string

// 固定的来源集合，顺序即前端图表的展示顺序，不可改动
const (
	SourceLinkedIn  Source = "LinkedIn"
	SourceCaseNews  Source = "Case/News"
	SourceReddit    Source = "Reddit"
	SourceWikipedia Source = "Wikipedia"
	SourceBusiness  Source = "Business"
	SourceAcademic  Source = "Academic"
	SourceGeneral   Source = "General"
)

// AllSources 全量来源列表，tally 输出按此顺序补零
var AllSources = []Source{
	SourceLinkedIn,
	SourceCaseNews,
	SourceReddit,
	SourceWikipedia,
	SourceBusiness,
	SourceAcademic,
	SourceGeneral,
}

// LabelPerson 实体标签，管线只关心 PERSON
const LabelPerson = "PERSON"

// Entity NLP 识别出的命名实体
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// SearchResult 单条检索命中
// Link 是去重主键，空 Link 的结果在去重前被丢弃
type SearchResult struct {
	Source  Source `json:"source"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`

	// pagemap 里的结构化时间提示，时间线提取优先使用
	PublishedTime string `json:"published_time,omitempty"` // metatags article:published_time
	DatePublished string `json:"date_published,omitempty"` // newsarticle datepublished

	Entities []Entity `json:"entities,omitempty"`
	Score    int      `json:"score,omitempty"`   // 仅 score 过滤策略使用
	Summary  string   `json:"summary,omitempty"` // 只有排名第一的结果会生成 AI 摘要
}

// RiskAnalysis AI 风险与情感评估
type RiskAnalysis struct {
	RiskScore              int     `json:"riskScore"` // 1-10
	RiskJustification      string  `json:"riskJustification"`
	SentimentScore         float64 `json:"sentimentScore"` // -1.0 ~ 1.0
	SentimentJustification string  `json:"sentimentJustification"`
}

// AIAnalysis 分析器的完整输出
type AIAnalysis struct {
	ShortSummary    string
	DetailedSummary string
	Risk            RiskAnalysis
}

// SourceCount 来源分布统计项
type SourceCount struct {
	Name  Source `json:"name"`
	Count int    `json:"count"`
}

// TimelineEvent 时间线事件，日期格式 2006-01-02
type TimelineEvent struct {
	Date   string `json:"date"`
	Title  string `json:"title"`
	Source Source `json:"source"`
}

// RawResult 返回给前端的精简结果，剥离实体等内部字段
type RawResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
	Source  Source `json:"source"`
	Summary string `json:"summary,omitempty"`
}

// Profile 最终聚合产物，JSON 字段名与前端约定一致
type Profile struct {
	Name            string          `json:"name"`
	Location        string          `json:"location"`
	ShortSummary    string          `json:"short_summary"`
	DetailedSummary string          `json:"detailed_summary"`
	RiskAnalysis    RiskAnalysis    `json:"riskAnalysis"`
	SourceAnalysis  []SourceCount   `json:"sourceAnalysis"`
	TimelineEvents  []TimelineEvent `json:"timelineEvents"`
	RawData         []RawResult     `json:"raw_data"`
}
