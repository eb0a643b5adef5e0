package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"onedocs/internal/ai/analyzer"
	"onedocs/internal/ai/provider"
	"onedocs/internal/config"
	"onedocs/internal/model"
)

// 连接测试使用的固定内容
const (
	testConnectionPrompt  = "You are a helpful assistant."
	testConnectionContent = "Hello, this is a connection test."
)

// ErrMissingAPIKey 请求与配置中都没有 API Key
var ErrMissingAPIKey = errors.New("api key is required")

// AnalyzeService 文档分析服务
// 用配置补全请求中缺省的 key/base_url/model，再交给 analyzer
type AnalyzeService struct {
	cfg    *config.AIConfig
	client *analyzer.Client
}

// NewAnalyzeService 创建文档分析服务
func NewAnalyzeService(cfg *config.AIConfig) *AnalyzeService {
	return NewAnalyzeServiceWithClient(cfg, analyzer.New(OptionsFromConfig(cfg)))
}

// NewAnalyzeServiceWithClient 使用指定 analyzer 客户端创建服务（用于测试）
func NewAnalyzeServiceWithClient(cfg *config.AIConfig, client *analyzer.Client) *AnalyzeService {
	return &AnalyzeService{
		cfg:    cfg,
		client: client,
	}
}

// OptionsFromConfig 把 AI 配置转换为 analyzer 选项
func OptionsFromConfig(cfg *config.AIConfig) analyzer.Options {
	opts := analyzer.Options{
		StructuredPrompt:        cfg.Prompt.Structured,
		PrefixContent:           cfg.Prompt.PrefixContent,
		IncludeGenerationParams: cfg.Options.GenerationParams,
		MaxTokens:               cfg.Options.MaxTokens,
		Timeout:                 cfg.Timeout,
	}

	if t := cfg.Options.Temperature; t != nil {
		opts.Temperature = analyzer.Float64(*t)
	}

	if p, err := provider.Lookup(cfg.Provider); err == nil {
		opts.DefaultModel = p.DefaultModel
	}
	if cfg.Model != "" {
		opts.DefaultModel = cfg.Model
	}

	if cfg.Engine == "eino" {
		opts.Completer = analyzer.NewEinoCompleter(cfg.Provider)
	}

	return opts
}

// Analyze 执行文档分析
func (s *AnalyzeService) Analyze(ctx context.Context, req *model.AnalyzeRequest) (string, error) {
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = s.cfg.APIKey
	}
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	baseURL := req.APIBaseURL
	if baseURL == "" {
		baseURL = s.cfg.BaseURL
	}
	// 模型优先级：请求 > 配置 > 服务商预设
	modelName := req.Model
	if modelName == "" {
		modelName = s.cfg.Model
	}
	baseURL, modelName = provider.Resolve(s.cfg.Provider, baseURL, modelName)

	logger := log.With().
		Str("provider", s.cfg.Provider).
		Str("base_url", baseURL).
		Str("model", modelName).
		Int("content_len", len(req.TextContent)).
		Logger()

	start := time.Now()
	result, err := s.client.Analyze(ctx, &analyzer.Request{
		APIKey:       apiKey,
		BaseURL:      baseURL,
		SystemPrompt: req.SystemPrompt,
		TextContent:  req.TextContent,
		Model:        modelName,
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("stage", analyzer.KindOf(err).String()).
			Dur("latency", time.Since(start)).
			Msg("analyze failed")
		return "", err
	}

	logger.Info().
		Int("result_len", len(result)).
		Dur("latency", time.Since(start)).
		Msg("analyze completed")

	return result, nil
}

// TestConnection 发送一条固定的测试消息检查 key/base_url/model 是否可用
func (s *AnalyzeService) TestConnection(ctx context.Context, req *model.TestConnectionRequest) error {
	// 结构化模式下测试提示词不是 JSON，这里绕开结构化解析
	opts := s.client.Options()
	opts.StructuredPrompt = false
	opts.PrefixContent = false
	svc := NewAnalyzeServiceWithClient(s.cfg, analyzer.New(opts))

	_, err := svc.Analyze(ctx, &model.AnalyzeRequest{
		APIKey:       req.APIKey,
		APIBaseURL:   req.APIBaseURL,
		SystemPrompt: testConnectionPrompt,
		TextContent:  testConnectionContent,
		Model:        req.Model,
	})
	return err
}
