package component

import (
	"context"
	"fmt"
	"net/http"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// DefaultArkBaseURL 方舟默认接入点
const DefaultArkBaseURL = "https://ark.cn-beijing.volces.com/api/v3"

// ChatModelSettings 单次调用的 ChatModel 参数
// MaxTokens/Temperature 为 nil 时不下发，0 温度会照常下发
type ChatModelSettings struct {
	Provider    string // openai(含 deepseek/glm 等兼容服务), azure, ark
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   *int
	Temperature *float32
	HTTPClient  *http.Client // 仅 openai/azure 使用；为空时使用库默认客户端
}

// NewChatModel 创建 ChatModel
func NewChatModel(ctx context.Context, s *ChatModelSettings) (model.ChatModel, error) {
	switch s.Provider {
	case "openai", "deepseek", "glm", "":
		return newOpenAIChatModel(ctx, s, false)
	case "azure":
		if s.BaseURL == "" {
			return nil, fmt.Errorf("azure provider requires base_url")
		}
		return newOpenAIChatModel(ctx, s, true)
	case "ark":
		return newArkChatModel(ctx, s)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", s.Provider)
	}
}

// newOpenAIChatModel 创建 OpenAI 兼容 ChatModel，byAzure 时使用 api-key 认证与部署路由
func newOpenAIChatModel(ctx context.Context, s *ChatModelSettings, byAzure bool) (model.ChatModel, error) {
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		Model:       s.Model,
		APIKey:      s.APIKey,
		BaseURL:     s.BaseURL,
		ByAzure:     byAzure,
		HTTPClient:  s.HTTPClient,
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
	})
}

// newArkChatModel 创建方舟 ChatModel
func newArkChatModel(ctx context.Context, s *ChatModelSettings) (model.ChatModel, error) {
	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = DefaultArkBaseURL
	}

	return arkext.NewChatModel(ctx, &arkext.ChatModelConfig{
		Model:       s.Model,
		APIKey:      s.APIKey,
		BaseURL:     baseURL,
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
	})
}
