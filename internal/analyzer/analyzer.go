package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/qs3c/osint_go_server/config"
	"github.com/qs3c/osint_go_server/internal/model"
)

// Analyzer 对过滤后的检索语料做风险与情感分析
// 调用失败时由调用方降级为固定结构，任务本身不失败
type Analyzer interface {
	Analyze(ctx context.Context, name, city string, snippets []string) (*model.AIAnalysis, error)
	SummarizeOne(ctx context.Context, r *model.SearchResult) (string, error)
}

// OpenAIAnalyzer 基于 Chat Completions 的实现
type OpenAIAnalyzer struct {
	client openai.Client
	model  string
}

func NewOpenAIAnalyzer(cfg *config.AIConfig) *OpenAIAnalyzer {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	m := cfg.Model
	if m == "" {
		m = "gpt-4o"
	}

	return &OpenAIAnalyzer{
		client: openai.NewClient(opts...),
		model:  m,
	}
}

const analyzePrompt = `As an expert OSINT analyst, analyze the following collected data snippets for an individual named '%s' possibly related to '%s'. This is the only information you are allowed to use.

**Collected Data:**
---
%s
---

**Your Tasks:**
1. Generate a 'short_summary': A concise, 2-sentence executive summary based *only* on the provided data.
2. Generate a 'detailed_summary': A comprehensive, multi-sentence paragraph detailing the key findings, connections, and potential implications from the data, *only* using the provided text.
3. Provide a 'riskScore': An integer from 1 (low risk) to 10 (high risk).
4. Provide a 'riskJustification': A single sentence explaining the risk score.
5. Provide a 'sentimentScore': A float from -1.0 (very negative) to 1.0 (very positive).
6. Provide a 'sentimentJustification': A single sentence explaining the sentiment score.

Output your response in a single, valid JSON object with the exact keys: "short_summary", "detailed_summary", "riskScore", "riskJustification", "sentimentScore", "sentimentJustification". Do not add any extra text or formatting.`

// 模型偶尔把整数分数写成小数，解析时放宽再收敛
type analysisPayload struct {
	ShortSummary           string  `json:"short_summary"`
	DetailedSummary        string  `json:"detailed_summary"`
	RiskScore              float64 `json:"riskScore"`
	RiskJustification      string  `json:"riskJustification"`
	SentimentScore         float64 `json:"sentimentScore"`
	SentimentJustification string  `json:"sentimentJustification"`
}

// Analyze 汇总全部片段做一次整体分析
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, name, city string, snippets []string) (*model.AIAnalysis, error) {
	contextBlock := strings.Join(snippets, "\n---\n")
	prompt := fmt.Sprintf(analyzePrompt, name, city, contextBlock)

	start := time.Now()
	content, err := a.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	log.Printf("AI analysis completed in %dms", time.Since(start).Milliseconds())

	raw, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse AI analysis: %w", err)
	}

	result := &model.AIAnalysis{
		ShortSummary:    payload.ShortSummary,
		DetailedSummary: payload.DetailedSummary,
		Risk: model.RiskAnalysis{
			RiskScore:              int(math.Round(payload.RiskScore)),
			RiskJustification:      payload.RiskJustification,
			SentimentScore:         payload.SentimentScore,
			SentimentJustification: payload.SentimentJustification,
		},
	}
	if result.ShortSummary == "" {
		result.ShortSummary = "Brief summary could not be generated."
	}
	if result.DetailedSummary == "" {
		result.DetailedSummary = "Detailed summary could not be generated."
	}
	return result, nil
}

// SummarizeOne 对单条结果生成两句话摘要
func (a *OpenAIAnalyzer) SummarizeOne(ctx context.Context, r *model.SearchResult) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following search result about a person in at most two sentences. Use only the provided text.\n\nTitle: %s\nSnippet: %s",
		r.Title, r.Snippet,
	)
	content, err := a.complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (a *OpenAIAnalyzer) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in AI response")
	}
	return resp.Choices[0].Message.Content, nil
}

// extractJSON 截取首个 '{' 到最后一个 '}' 之间的内容
// 模型有时会在 JSON 外包一层说明文字或代码块标记
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", errors.New("no valid JSON object found in the AI response")
	}
	return s[start : end+1], nil
}

// DegradedAnalysis AI 调用失败时的固定结构
func DegradedAnalysis() *model.AIAnalysis {
	return &model.AIAnalysis{
		ShortSummary:    "An error occurred during AI analysis.",
		DetailedSummary: "The detailed analysis could not be generated due to an AI error.",
		Risk: model.RiskAnalysis{
			RiskScore:              0,
			RiskJustification:      "Analysis failed.",
			SentimentScore:         0,
			SentimentJustification: "Analysis failed.",
		},
	}
}

// DisabledAnalysis 未配置 AI 时的固定结构
func DisabledAnalysis() *model.AIAnalysis {
	return &model.AIAnalysis{
		ShortSummary:    "AI summarization is disabled.",
		DetailedSummary: "Detailed analysis could not be performed as the AI model is offline.",
		Risk: model.RiskAnalysis{
			RiskScore:              0,
			RiskJustification:      "N/A",
			SentimentScore:         0,
			SentimentJustification: "N/A",
		},
	}
}
