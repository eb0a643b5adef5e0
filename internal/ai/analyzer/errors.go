package analyzer

import (
	"errors"
	"fmt"
)

// Kind 失败发生的阶段
type Kind int

const (
	KindUnknown Kind = iota
	KindPromptParse
	KindTransport
	KindHTTPStatus
	KindResponseParse
	KindEmptyChoices
)

func (k Kind) String() string {
	switch k {
	case KindPromptParse:
		return "prompt_parse"
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindResponseParse:
		return "response_parse"
	case KindEmptyChoices:
		return "empty_choices"
	default:
		return "unknown"
	}
}

// Error 分析调用的错误
type Error struct {
	Kind       Kind
	StatusCode int    // 仅 KindHTTPStatus
	Status     string // 如 "401 Unauthorized"
	Body       string // 上游返回的错误内容
	Err        error
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindPromptParse:
		return fmt.Sprintf("解析提示词失败: %v", e.Err)
	case KindTransport:
		return fmt.Sprintf("发送请求失败: %v", e.Err)
	case KindHTTPStatus:
		return fmt.Sprintf("API 请求失败 %s: %s", e.Status, e.Body)
	case KindResponseParse:
		return fmt.Sprintf("解析响应失败: %v", e.Err)
	case KindEmptyChoices:
		return "API 返回空响应: no choices returned"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unknown error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf 返回错误所属阶段，非 *Error 返回 KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
