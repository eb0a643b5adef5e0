package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Completer 把构造好的 ChatRequest 发往上游并取回回复文本
type Completer interface {
	Complete(ctx context.Context, target Target, req *ChatRequest) (string, error)
}

// HTTPCompleter 直接请求 {base_url}/chat/completions
type HTTPCompleter struct {
	Client      *http.Client
	Credentials CredentialResolver
}

// NewHTTPCompleter 创建 HTTPCompleter，client 为空时使用 http.DefaultClient
func NewHTTPCompleter(client *http.Client, credentials CredentialResolver) *HTTPCompleter {
	if client == nil {
		client = http.DefaultClient
	}
	if credentials == nil {
		credentials = DefaultCredentials()
	}
	return &HTTPCompleter{
		Client:      client,
		Credentials: credentials,
	}
}

// Endpoint 去掉 base URL 末尾的 / 后拼接 /chat/completions
func Endpoint(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/chat/completions"
}

// Complete 实现 Completer
func (c *HTTPCompleter) Complete(ctx context.Context, target Target, chatReq *ChatRequest) (string, error) {
	body, err := json.Marshal(chatReq)
	if err != nil {
		return "", newError(KindTransport, fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, Endpoint(target.BaseURL), bytes.NewReader(body))
	if err != nil {
		return "", newError(KindTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.Credentials.Resolve(target.BaseURL).Apply(req.Header, target.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", newError(KindTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorText := "Unknown error"
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			errorText = string(data)
		}
		return "", &Error{
			Kind:       KindHTTPStatus,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       errorText,
		}
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", newError(KindResponseParse, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", newError(KindEmptyChoices, nil)
	}

	return chatResp.Choices[0].Message.Content, nil
}
