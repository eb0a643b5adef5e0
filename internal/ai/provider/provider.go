package provider

import (
	"fmt"
	"sort"
)

// Preset 模型服务商预设
type Preset struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	BaseURL      string   `json:"base_url"`
	DefaultModel string   `json:"default_model"`
	Models       []string `json:"models"`
}

var presets = map[string]Preset{
	"openai": {
		Key:          "openai",
		Name:         "OpenAI",
		BaseURL:      "https://api.openai.com/v1",
		DefaultModel: "gpt-4o",
		Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4", "gpt-3.5-turbo"},
	},
	"deepseek": {
		Key:          "deepseek",
		Name:         "DeepSeek",
		BaseURL:      "https://api.deepseek.com",
		DefaultModel: "deepseek-chat",
		Models:       []string{"deepseek-chat", "deepseek-reasoner"},
	},
	"glm": {
		Key:          "glm",
		Name:         "智谱GLM",
		BaseURL:      "https://open.bigmodel.cn/api/paas/v4",
		DefaultModel: "glm-4-flash",
		Models:       []string{"glm-4-flash", "glm-4-air", "glm-4"},
	},
	"ark": {
		Key:          "ark",
		Name:         "火山方舟",
		BaseURL:      "https://ark.cn-beijing.volces.com/api/v3",
		DefaultModel: "doubao-seed-1-6-flash-250615",
		Models:       []string{"doubao-seed-1-6-flash-250615"},
	},
}

// Lookup 按 key 查找预设
func Lookup(key string) (Preset, error) {
	p, ok := presets[key]
	if !ok {
		return Preset{}, fmt.Errorf("unsupported provider: %s", key)
	}
	return p, nil
}

// All 返回全部预设，按 key 排序
func All() []Preset {
	list := make([]Preset, 0, len(presets))
	for _, p := range presets {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	return list
}

// Names 返回全部预设 key，按字母排序
func Names() []string {
	names := make([]string, 0, len(presets))
	for _, p := range All() {
		names = append(names, p.Key)
	}
	return names
}

// Resolve 用预设补全空缺的 base URL 与模型
// 未知 provider（如 azure）原样返回
func Resolve(key, baseURL, model string) (string, string) {
	p, err := Lookup(key)
	if err != nil {
		return baseURL, model
	}
	if baseURL == "" {
		baseURL = p.BaseURL
	}
	if model == "" {
		model = p.DefaultModel
	}
	return baseURL, model
}
