package analyzer

import (
	"net/http"
	"net/url"
	"strings"
)

// CredentialStrategy 把 API Key 写入请求头
type CredentialStrategy interface {
	Apply(h http.Header, apiKey string)
}

// CredentialResolver 根据 base URL 选择凭证策略
type CredentialResolver interface {
	Resolve(baseURL string) CredentialStrategy
}

// BearerAuth Authorization: Bearer {key}
// OpenAI、DeepSeek、智谱 GLM、方舟均使用该方式
type BearerAuth struct{}

// Apply 实现 CredentialStrategy
func (BearerAuth) Apply(h http.Header, apiKey string) {
	h.Set("Authorization", "Bearer "+apiKey)
}

// APIKeyHeaderAuth 把 key 原样放进指定 header，如 Azure OpenAI 的 api-key
type APIKeyHeaderAuth struct {
	Header string
}

// Apply 实现 CredentialStrategy
func (a APIKeyHeaderAuth) Apply(h http.Header, apiKey string) {
	h.Set(a.Header, apiKey)
}

// HostRule 一条 host 后缀到凭证策略的映射
type HostRule struct {
	Suffix   string
	Strategy CredentialStrategy
}

// HostResolver 按 host 后缀匹配凭证策略，未命中时使用 Fallback
type HostResolver struct {
	Rules    []HostRule
	Fallback CredentialStrategy
}

// DefaultCredentials 只有 Azure 需要特殊处理，其余一律 Bearer
func DefaultCredentials() *HostResolver {
	return &HostResolver{
		Rules: []HostRule{
			{Suffix: ".openai.azure.com", Strategy: APIKeyHeaderAuth{Header: "api-key"}},
		},
		Fallback: BearerAuth{},
	}
}

// Resolve 实现 CredentialResolver
func (r *HostResolver) Resolve(baseURL string) CredentialStrategy {
	host := hostOf(baseURL)
	for _, rule := range r.Rules {
		if host != "" && strings.HasSuffix(host, rule.Suffix) {
			return rule.Strategy
		}
	}
	if r.Fallback == nil {
		return BearerAuth{}
	}
	return r.Fallback
}

func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
