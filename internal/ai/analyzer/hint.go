package analyzer

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// Hint 根据失败原因给出可以直接展示给用户的处理建议
// 无法归类时返回空字符串
func Hint(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) && e.Kind == KindHTTPStatus {
		if isBalanceError(e.Body) {
			return hintBalance
		}
		switch e.StatusCode {
		case http.StatusUnauthorized:
			return hintUnauthorized
		case http.StatusPaymentRequired:
			return hintBalance
		case http.StatusForbidden:
			return hintForbidden
		case http.StatusTooManyRequests:
			return hintRateLimited
		case http.StatusNotFound:
			return hintModelNotFound
		}
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return hintTimeout
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return hintNetwork
	}

	return ""
}

const (
	hintUnauthorized  = "API Key 无效或已过期\n\n请检查：\n1. API Key 是否正确\n2. API Key 是否有足够的权限\n3. 账户是否有足够的余额"
	hintBalance       = "账户余额不足\n\n解决方案：\n1. 前往服务商官网充值账户\n2. 检查当前账户余额是否充足\n3. 确认账户状态是否正常"
	hintForbidden     = "访问被拒绝\n\n可能原因：\n1. API Key 权限不足\n2. 请求频率超限\n3. IP 地址被限制"
	hintRateLimited   = "请求频率过高\n\n建议：\n1. 稍后再试\n2. 检查账户限额\n3. 考虑升级服务计划"
	hintModelNotFound = "模型不存在或不可用\n\n请确认模型名称拼写正确，且 API Key 有对应模型的访问权限"
	hintTimeout       = "请求超时\n\n可能原因：\n1. 网络连接不稳定\n2. 服务器响应缓慢\n3. 文档内容过长"
	hintNetwork       = "网络连接失败\n\n建议：\n1. 检查网络连接\n2. 确认 Base URL 是否正确\n3. 检查防火墙设置"
)

// 各家返回余额不足的写法不一，InsuffcientBalance 是上游的原始拼写
var balanceMarkers = []string{
	"InsufficientBalance",
	"InsuffcientBalance",
	"insufficient_balance",
	"insufficient_quota",
	"余额不足",
}

func isBalanceError(body string) bool {
	for _, m := range balanceMarkers {
		if strings.Contains(body, m) {
			return true
		}
	}
	return false
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
