package analyzer

// 消息角色
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage 聊天消息
type ChatMessage struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// ChatRequest chat/completions 请求体
// MaxTokens/Temperature 为 nil 时不出现在 JSON 中
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

// ChatResponse chat/completions 响应体，只关心 choices
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// Choice 选择结果
type Choice struct {
	Message ChatMessage `json:"message"`
}

// Request 一次文档分析调用的输入
type Request struct {
	APIKey       string
	BaseURL      string
	SystemPrompt string
	TextContent  string
	Model        string // 为空时使用 Options.DefaultModel
}

// Target 上游服务地址与凭证
type Target struct {
	APIKey  string
	BaseURL string
}
