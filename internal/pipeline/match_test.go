package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qs3c/osint_go_server/internal/model"
)

func TestEntityTier(t *testing.T) {
	target := newTargetName("Jane Doe")

	t.Run("person entity with all name parts", func(t *testing.T) {
		r := &model.SearchResult{Entities: []model.Entity{
			{Text: "Dr. Jane Doe", Label: model.LabelPerson},
		}}
		assert.True(t, entityTier(target, r))
	})

	t.Run("non-person entity ignored", func(t *testing.T) {
		r := &model.SearchResult{Entities: []model.Entity{
			{Text: "Jane Doe", Label: "ORG"},
		}}
		assert.False(t, entityTier(target, r))
	})

	t.Run("partial person name rejected", func(t *testing.T) {
		r := &model.SearchResult{Entities: []model.Entity{
			{Text: "Jane Smith", Label: model.LabelPerson},
		}}
		assert.False(t, entityTier(target, r))
	})

	t.Run("single part name matches either direction", func(t *testing.T) {
		single := newTargetName("Jane")
		r := &model.SearchResult{Entities: []model.Entity{
			{Text: "Jane Doe", Label: model.LabelPerson},
		}}
		assert.True(t, entityTier(single, r))
	})
}

func TestExactPhraseTier(t *testing.T) {
	target := newTargetName("Jane Doe")

	t.Run("contiguous phrase in title", func(t *testing.T) {
		r := &model.SearchResult{Title: "Profile of JANE DOE, surgeon"}
		assert.True(t, exactPhraseTier(target, r))
	})

	t.Run("phrase in snippet", func(t *testing.T) {
		r := &model.SearchResult{Snippet: "Interview with jane doe yesterday."}
		assert.True(t, exactPhraseTier(target, r))
	})

	t.Run("word boundary respected", func(t *testing.T) {
		r := &model.SearchResult{Title: "Janet Doeson collects stamps"}
		assert.False(t, exactPhraseTier(target, r))
	})

	t.Run("parts out of order rejected", func(t *testing.T) {
		r := &model.SearchResult{Title: "Doe Jane registry entry"}
		assert.False(t, exactPhraseTier(target, r))
	})
}

func TestFuzzyTiers(t *testing.T) {
	target := newTargetName("Jane Doe")

	t.Run("whole name accepts near match", func(t *testing.T) {
		// 全名作为子串出现但后面粘了字母，精确短语层会漏掉
		r := &model.SearchResult{Title: "jane doee spotted downtown"}
		assert.False(t, exactPhraseTier(target, r))
		assert.True(t, fuzzyWholeTier(target, r))
	})

	t.Run("whole name rejects unrelated text", func(t *testing.T) {
		r := &model.SearchResult{Title: "quarterly financial report published"}
		assert.False(t, fuzzyWholeTier(target, r))
	})

	t.Run("token tier requires every token", func(t *testing.T) {
		both := &model.SearchResult{Title: "Janet Doeson research paper"}
		assert.True(t, fuzzyTokenTier(target, both))

		onlyOne := &model.SearchResult{Title: "Janet Smithson research paper"}
		assert.False(t, fuzzyTokenTier(target, onlyOne))
	})
}

func TestIdentityMatcher_Matches(t *testing.T) {
	m := NewIdentityMatcher()

	t.Run("entity tier short-circuits before text tiers", func(t *testing.T) {
		// 文本完全无关，只有实体能对上
		r := &model.SearchResult{
			Title:   "Municipal registry entry 4471",
			Snippet: "Updated records for the district office.",
			Entities: []model.Entity{
				{Text: "Jane Doe", Label: model.LabelPerson},
			},
		}
		assert.True(t, m.Matches("Jane Doe", r))
	})

	t.Run("falls through to exact phrase", func(t *testing.T) {
		r := &model.SearchResult{Title: "Jane Doe wins award"}
		assert.True(t, m.Matches("Jane Doe", r))
	})

	t.Run("rejects unrelated result", func(t *testing.T) {
		r := &model.SearchResult{
			Title:   "Python programming tutorial",
			Snippet: "Learn loops and functions step by step.",
		}
		assert.False(t, m.Matches("Jane Doe", r))
	})

	t.Run("blank name rejects everything", func(t *testing.T) {
		r := &model.SearchResult{Title: "anything"}
		assert.False(t, m.Matches("   ", r))
	})
}
