package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/schema"
	goopenai "github.com/meguminnnnnnnnn/go-openai"
	arkmodel "github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"

	"onedocs/internal/ai/component"
)

// emptyChoicesMarker eino openai 客户端在 choices 为空时返回的错误文本片段
const emptyChoicesMarker = "empty choices"

// EinoCompleter 通过 Eino ChatModel 完成调用
// 每次调用按目标地址新建 ChatModel，不持有调用间状态
type EinoCompleter struct {
	Provider   string       // openai, azure, ark；为空时按 host 推断
	HTTPClient *http.Client // 为空时使用库默认客户端
}

// NewEinoCompleter 创建 EinoCompleter
func NewEinoCompleter(provider string) *EinoCompleter {
	return &EinoCompleter{Provider: provider}
}

// Complete 实现 Completer，错误分类与 HTTPCompleter 一致
func (c *EinoCompleter) Complete(ctx context.Context, target Target, chatReq *ChatRequest) (string, error) {
	settings := &component.ChatModelSettings{
		Provider:   c.providerFor(target.BaseURL),
		APIKey:     target.APIKey,
		BaseURL:    strings.TrimRight(target.BaseURL, "/"),
		Model:      chatReq.Model,
		MaxTokens:  chatReq.MaxTokens,
		HTTPClient: c.HTTPClient,
	}
	if chatReq.Temperature != nil {
		temperature := float32(*chatReq.Temperature)
		settings.Temperature = &temperature
	}

	chatModel, err := component.NewChatModel(ctx, settings)
	if err != nil {
		return "", newError(KindTransport, fmt.Errorf("create chat model: %w", err))
	}

	messages := make([]*schema.Message, 0, len(chatReq.Messages))
	for _, m := range chatReq.Messages {
		messages = append(messages, &schema.Message{
			Role:    schema.RoleType(m.Role),
			Content: m.Content,
		})
	}

	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return "", classifyGenerateError(err)
	}
	if resp == nil {
		return "", newError(KindEmptyChoices, nil)
	}

	return resp.Content, nil
}

func (c *EinoCompleter) providerFor(baseURL string) string {
	switch c.Provider {
	case "azure", "ark":
		return c.Provider
	}
	if _, ok := DefaultCredentials().Resolve(baseURL).(APIKeyHeaderAuth); ok {
		return "azure"
	}
	return "openai"
}

// classifyGenerateError 把 SDK 错误还原为失败阶段
func classifyGenerateError(err error) error {
	var (
		reqErr    *goopenai.RequestError
		apiErr    *goopenai.APIError
		arkReqErr *arkmodel.RequestError
		arkAPIErr *arkmodel.APIError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0:
		return statusError(reqErr.HTTPStatusCode, reqErr.HTTPStatus, string(reqErr.Body), err)
	case errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0:
		return statusError(apiErr.HTTPStatusCode, apiErr.HTTPStatus, apiErr.Message, err)
	case errors.As(err, &arkAPIErr) && arkAPIErr.HTTPStatusCode > 0:
		return statusError(arkAPIErr.HTTPStatusCode, "", arkAPIErr.Message, err)
	case errors.As(err, &arkReqErr) && arkReqErr.HTTPStatusCode > 0:
		body := ""
		if arkReqErr.Err != nil {
			body = arkReqErr.Err.Error()
		}
		return statusError(arkReqErr.HTTPStatusCode, "", body, err)
	case errors.Is(err, arkext.ErrEmptyResponse), strings.Contains(err.Error(), emptyChoicesMarker):
		return newError(KindEmptyChoices, err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return newError(KindResponseParse, err)
	default:
		return newError(KindTransport, err)
	}
}

func statusError(code int, status, body string, err error) *Error {
	if status == "" {
		status = fmt.Sprintf("%d %s", code, http.StatusText(code))
	}
	if body == "" {
		body = "Unknown error"
	}
	return &Error{
		Kind:       KindHTTPStatus,
		StatusCode: code,
		Status:     status,
		Body:       body,
		Err:        err,
	}
}
