package nlp

import (
	"log"

	"github.com/jdkato/prose/v2"

	"github.com/qs3c/osint_go_server/internal/model"
)

// Extractor 命名实体识别能力
// 失败时返回空列表，实体缺失只会让结果走后续的文本匹配层级
type Extractor interface {
	Extract(text string) []model.Entity
}

// ProseExtractor 基于 prose 的本地 NER 实现
type ProseExtractor struct{}

func NewProseExtractor() *ProseExtractor {
	return &ProseExtractor{}
}

func (e *ProseExtractor) Extract(text string) []model.Entity {
	if text == "" {
		return nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		log.Printf("NER extraction failed: %v", err)
		return nil
	}

	ents := doc.Entities()
	entities := make([]model.Entity, 0, len(ents))
	for _, ent := range ents {
		entities = append(entities, model.Entity{
			Text:  ent.Text,
			Label: ent.Label,
		})
	}
	return entities
}
