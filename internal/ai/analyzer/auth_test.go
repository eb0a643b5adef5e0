package analyzer

import (
	"net/http"
	"testing"
)

func TestHostResolver_Resolve(t *testing.T) {
	resolver := DefaultCredentials()

	tests := []struct {
		baseURL    string
		wantHeader string
		wantValue  string
	}{
		{"https://api.openai.com/v1", "Authorization", "Bearer k"},
		{"https://api.deepseek.com", "Authorization", "Bearer k"},
		{"https://open.bigmodel.cn/api/paas/v4", "Authorization", "Bearer k"},
		{"https://my-res.openai.azure.com/openai/deployments/gpt4o", "Api-Key", "k"},
		{"https://MY-RES.OPENAI.AZURE.COM", "Api-Key", "k"},
		{"https://openai.azure.com.evil.example", "Authorization", "Bearer k"},
		{"::not a url", "Authorization", "Bearer k"},
	}

	for _, tt := range tests {
		t.Run(tt.baseURL, func(t *testing.T) {
			h := http.Header{}
			resolver.Resolve(tt.baseURL).Apply(h, "k")
			if got := h.Get(tt.wantHeader); got != tt.wantValue {
				t.Errorf("%s = %q, want %q", tt.wantHeader, got, tt.wantValue)
			}
			if len(h) != 1 {
				t.Errorf("expected exactly one credential header, got %v", h)
			}
		})
	}
}

func TestHostResolver_CustomRule(t *testing.T) {
	resolver := &HostResolver{
		Rules: []HostRule{{Suffix: "example.com", Strategy: APIKeyHeaderAuth{Header: "X-Token"}}},
	}

	h := http.Header{}
	resolver.Resolve("https://api.example.com").Apply(h, "secret")
	if h.Get("X-Token") != "secret" {
		t.Errorf("X-Token = %q", h.Get("X-Token"))
	}

	h = http.Header{}
	resolver.Resolve("https://other.host").Apply(h, "secret")
	if h.Get("Authorization") != "Bearer secret" {
		t.Errorf("nil fallback should use bearer, got %v", h)
	}
}
