package model

// AnalyzeRequest 文档分析请求
// 字段与桌面端调用 analyze_content 时的参数一致
type AnalyzeRequest struct {
	APIKey       string `json:"api_key"`                          // 为空时使用配置中的 ai.api_key
	APIBaseURL   string `json:"api_base_url"`                     // 为空时使用配置或服务商预设
	SystemPrompt string `json:"system_prompt"`                    // 系统提示词，结构化模式下为 JSON
	TextContent  string `json:"text_content" binding:"required"` // 文档内容
	Model        string `json:"model,omitempty"`                  // 模型名称（可选）
}

// TestConnectionRequest 连接测试请求
type TestConnectionRequest struct {
	APIKey     string `json:"api_key"`
	APIBaseURL string `json:"api_base_url"`
	Model      string `json:"model,omitempty"`
}
