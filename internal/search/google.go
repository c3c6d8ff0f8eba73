package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/qs3c/osint_go_server/config"
	"github.com/qs3c/osint_go_server/internal/model"
)

// GoogleClient Google Custom Search JSON API 客户端
type GoogleClient struct {
	cfg        *config.SearchConfig
	httpClient *http.Client
}

func NewGoogleClient(cfg *config.SearchConfig) *GoogleClient {
	return &GoogleClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type cseResponse struct {
	Items []cseItem `json:"items"`
}

type cseItem struct {
	Title   string     `json:"title"`
	Link    string     `json:"link"`
	Snippet string     `json:"snippet"`
	PageMap csePageMap `json:"pagemap"`
}

type csePageMap struct {
	MetaTags    []map[string]string `json:"metatags"`
	NewsArticle []map[string]string `json:"newsarticle"`
}

// Search 执行一次定制检索，结果打上来源标签
// 传输层错误、配额超限等返回 error，由调用方按该来源零结果降级
func (c *GoogleClient) Search(ctx context.Context, query string, maxResults int, tag model.Source) ([]model.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.cfg.APIKey)
	params.Set("cx", c.cfg.CSEID)
	params.Set("num", strconv.Itoa(maxResults))
	if c.cfg.Country != "" {
		params.Set("gl", c.cfg.Country)
	}
	if c.cfg.Language != "" {
		params.Set("hl", c.cfg.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var body cseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]model.SearchResult, 0, len(body.Items))
	for _, item := range body.Items {
		r := model.SearchResult{
			Source:  tag,
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		}
		// 保留 pagemap 里的结构化发布时间，供时间线提取使用
		if len(item.PageMap.MetaTags) > 0 {
			r.PublishedTime = item.PageMap.MetaTags[0]["article:published_time"]
		}
		if len(item.PageMap.NewsArticle) > 0 {
			r.DatePublished = item.PageMap.NewsArticle[0]["datepublished"]
		}
		results = append(results, r)
	}

	log.Printf("%s search got %d results for query: %q", tag, len(results), query)
	return results, nil
}
