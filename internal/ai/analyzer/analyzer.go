// Package analyzer 把文档文本交给 OpenAI 兼容的 chat/completions 接口并取回回复
//
// 一次 Analyze 只发出一个请求：构造提示词 → 组装 ChatRequest → POST → 解析 choices[0]。
// 不缓存、不重试、不保留调用间状态，可被多个 goroutine 并发调用。
package analyzer

import (
	"context"
	"net/http"
	"time"
)

const (
	DefaultModel       = "gpt-4o"
	DefaultMaxTokens   = 4000
	DefaultTemperature = 0.7
	DefaultTimeout     = 120 * time.Second
)

// Options 分析调用的可选项
type Options struct {
	DefaultModel            string
	StructuredPrompt        bool // system prompt 为 PromptDescriptor JSON
	PrefixContent           bool // 用户消息前加 ContentPrefix
	IncludeGenerationParams bool // 发送 max_tokens 与 temperature
	MaxTokens               int
	Temperature             *float64 // 为空时使用 DefaultTemperature，0 会照常发送
	Timeout                 time.Duration // <=0 时使用 DefaultTimeout
	Credentials             CredentialResolver
	Completer               Completer // 为空时使用 HTTPCompleter
	HTTPClient              *http.Client
}

// PresetStructured 结构化提示词，带生成参数
func PresetStructured() Options {
	return Options{
		DefaultModel:            DefaultModel,
		StructuredPrompt:        true,
		IncludeGenerationParams: true,
		MaxTokens:               DefaultMaxTokens,
		Temperature:             Float64(DefaultTemperature),
	}
}

// PresetPlain 原样使用系统提示词，文档内容带说明语
func PresetPlain() Options {
	return Options{
		DefaultModel:  DefaultModel,
		PrefixContent: true,
	}
}

// PresetMultiProvider 与 PresetPlain 相同，模型名由调用方传入以适配其他服务商
func PresetMultiProvider(defaultModel string) Options {
	opts := PresetPlain()
	if defaultModel != "" {
		opts.DefaultModel = defaultModel
	}
	return opts
}

// Float64 返回 v 的指针，便于设置 Options.Temperature
func Float64(v float64) *float64 {
	return &v
}

// Client 文档分析客户端
type Client struct {
	opts      Options
	completer Completer
}

// New 创建分析客户端
func New(opts Options) *Client {
	if opts.DefaultModel == "" {
		opts.DefaultModel = DefaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Temperature == nil {
		opts.Temperature = Float64(DefaultTemperature)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	completer := opts.Completer
	if completer == nil {
		completer = NewHTTPCompleter(opts.HTTPClient, opts.Credentials)
	}

	return &Client{
		opts:      opts,
		completer: completer,
	}
}

// Options 返回生效的配置
func (c *Client) Options() Options {
	return c.opts
}

// Analyze 发送文档内容并返回模型回复
// 错误均为 *Error，可用 KindOf 判断失败阶段
func (c *Client) Analyze(ctx context.Context, req *Request) (string, error) {
	chatReq, err := c.BuildRequest(req)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	return c.completer.Complete(ctx, Target{APIKey: req.APIKey, BaseURL: req.BaseURL}, chatReq)
}

// BuildRequest 组装 ChatRequest，不访问网络
func (c *Client) BuildRequest(req *Request) (*ChatRequest, error) {
	messages, err := c.buildMessages(req)
	if err != nil {
		return nil, err
	}

	chatReq := &ChatRequest{
		Model:    c.opts.DefaultModel,
		Messages: messages,
	}
	if req.Model != "" {
		chatReq.Model = req.Model
	}
	if c.opts.IncludeGenerationParams {
		maxTokens := c.opts.MaxTokens
		temperature := *c.opts.Temperature
		chatReq.MaxTokens = &maxTokens
		chatReq.Temperature = &temperature
	}

	return chatReq, nil
}
