package search

import (
	"context"

	"github.com/qs3c/osint_go_server/internal/model"
)

// Provider 外部检索能力
// 单个查询失败只影响该来源的结果，调用方按"零结果"处理，不中断整个管线
type Provider interface {
	Search(ctx context.Context, query string, maxResults int, tag model.Source) ([]model.SearchResult, error)
}
