package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/osint_go_server/internal/model"
	"github.com/qs3c/osint_go_server/internal/nlp"
)

func TestBuildTimeline(t *testing.T) {
	dates := nlp.NewFuzzyDateExtractor()

	results := []model.SearchResult{
		{
			Source:  model.SourceCaseNews,
			Title:   "Court hearing",
			Snippet: "The hearing took place on May 5, 2019 in the district court.",
		},
		{
			Source:        model.SourceWikipedia,
			Title:         "Biography",
			DatePublished: "2021-03-15",
		},
		{
			Source:  model.SourceLinkedIn,
			Title:   "Profile page",
			Snippet: "Doctor based in Pune with surgical experience.",
		},
	}

	events := BuildTimeline(results, dates)
	require.Len(t, events, 2)

	// 倒序：最近的在前，无日期的结果被排除
	assert.Equal(t, "2021-03-15", events[0].Date)
	assert.Equal(t, model.SourceWikipedia, events[0].Source)
	assert.Equal(t, "2019-05-05", events[1].Date)
	assert.Equal(t, "Court hearing", events[1].Title)
}

func TestBuildTimeline_StableTies(t *testing.T) {
	dates := nlp.NewFuzzyDateExtractor()
	results := []model.SearchResult{
		{Title: "first", DatePublished: "2020-01-01", Source: model.SourceGeneral},
		{Title: "second", DatePublished: "2020-01-01", Source: model.SourceReddit},
	}
	events := BuildTimeline(results, dates)
	require.Len(t, events, 2)
	assert.Equal(t, "first", events[0].Title)
	assert.Equal(t, "second", events[1].Title)
}
