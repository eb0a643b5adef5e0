package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	AI     AIConfig     `mapstructure:"ai"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig 本地 HTTP 桥接服务配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig AI 服务配置
type AIConfig struct {
	Provider string          `mapstructure:"provider"` // openai, deepseek, glm, azure, ark
	Engine   string          `mapstructure:"engine"`   // http, eino
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Timeout  time.Duration   `mapstructure:"timeout"`
	Prompt   PromptConfig    `mapstructure:"prompt"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// PromptConfig 提示词构造方式
type PromptConfig struct {
	Structured    bool `mapstructure:"structured"`     // system_prompt 为 {"role","instructions"} JSON
	PrefixContent bool `mapstructure:"prefix_content"` // 文档内容前加说明语
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	GenerationParams bool     `mapstructure:"generation_params"` // 是否发送 max_tokens/temperature
	Temperature      *float64 `mapstructure:"temperature"`       // 为空时取默认值，0 会照常发送
	MaxTokens        int      `mapstructure:"max_tokens"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// Validate 验证服务配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	return c.AI.Validate()
}

// Validate 验证 AI 配置有效性
func (c *AIConfig) Validate() error {
	switch c.Engine {
	case "", "http", "eino":
	default:
		return fmt.Errorf("invalid ai engine %q, must be http/eino", c.Engine)
	}

	if c.Timeout < 0 {
		return errors.New("ai timeout must not be negative")
	}
	if c.Options.MaxTokens < 0 {
		return errors.New("ai max_tokens must not be negative")
	}
	if t := c.Options.Temperature; t != nil && (*t < 0 || *t > 2) {
		return errors.New("ai temperature must be within [0, 2]")
	}

	return nil
}
