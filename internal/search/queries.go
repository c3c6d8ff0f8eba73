package search

import (
	"fmt"
	"strings"

	"github.com/qs3c/osint_go_server/internal/model"
)

// Query 一条带来源标签的检索计划
type Query struct {
	Source     model.Source
	Text       string
	MaxResults int
}

// BuildQueries 按固定来源顺序生成全部查询
// 查询模板与各来源的条数上限是对外行为的一部分，改动会改变结果构成
func BuildQueries(name, city string, extraTerms []string) []Query {
	return []Query{
		{model.SourceLinkedIn, LinkedInQuery(name, city), 5},
		{model.SourceCaseNews, CaseNewsQuery(name, city), 10},
		{model.SourceReddit, RedditQuery(name, city), 5},
		{model.SourceWikipedia, WikipediaQuery(name), 2},
		{model.SourceBusiness, BusinessQuery(name), 5},
		{model.SourceAcademic, AcademicQuery(name), 3},
		{model.SourceGeneral, GeneralQuery(name, city, extraTerms), 5},
	}
}

// LinkedInQuery 限定 linkedin.com/in 的职业档案查询
func LinkedInQuery(name, city string) string {
	return fmt.Sprintf(`site:linkedin.com/in "%s" "%s"`, name, city)
}

// CaseNewsQuery 新闻与司法关键词 OR 查询
func CaseNewsQuery(name, city string) string {
	return fmt.Sprintf(`"%s" "%s" crime OR FIR OR arrested OR court OR case OR lawsuit`, name, city)
}

func RedditQuery(name, city string) string {
	return fmt.Sprintf(`site:reddit.com "%s" "%s"`, name, city)
}

func WikipediaQuery(name string) string {
	return fmt.Sprintf(`site:en.wikipedia.org "%s"`, name)
}

func BusinessQuery(name string) string {
	return fmt.Sprintf(`"%s" site:crunchbase.com OR site:zaubacorp.com`, name)
}

func AcademicQuery(name string) string {
	return fmt.Sprintf(`"%s" site:scholar.google.com`, name)
}

// GeneralQuery 通用查询，附加用户提供的额外关键词
func GeneralQuery(name, city string, extraTerms []string) string {
	q := fmt.Sprintf(`"%s" "%s"`, name, city)
	terms := make([]string, 0, len(extraTerms))
	for _, t := range extraTerms {
		t = strings.TrimSpace(t)
		if t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) > 0 {
		q += " " + strings.Join(terms, " ")
	}
	return q
}
