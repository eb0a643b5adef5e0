package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// DefaultRole 结构化提示词缺少 role 时使用
	DefaultRole = "AI助手"

	// ContentPrefix 文档内容前的说明语
	ContentPrefix = "这是我上传的文档内容，请开始分析：\n\n"

	structuredPromptTemplate = "角色：%s\n\n指令：%s\n\n请严格按照上述角色和指令分析以下文档内容。"
)

// PromptDescriptor 结构化系统提示词
// 形如 {"role": "...", "instructions": {...}}
type PromptDescriptor struct {
	Role         string
	Instructions json.RawMessage
}

// ParsePromptDescriptor 解析结构化系统提示词
// 只有非法 JSON 才返回错误；字段缺失或类型不符时回落到默认值
func ParsePromptDescriptor(raw string) (*PromptDescriptor, error) {
	var value json.RawMessage
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, err
	}

	desc := &PromptDescriptor{
		Role:         DefaultRole,
		Instructions: json.RawMessage("{}"),
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(value, &fields); err != nil {
		// 合法 JSON 但不是对象
		return desc, nil
	}

	if roleRaw, ok := fields["role"]; ok {
		var role string
		if err := json.Unmarshal(roleRaw, &role); err == nil {
			desc.Role = role
		}
	}
	if instructions, ok := fields["instructions"]; ok {
		desc.Instructions = instructions
	}

	return desc, nil
}

// SystemPrompt 渲染为完整的系统消息
func (d *PromptDescriptor) SystemPrompt() string {
	return fmt.Sprintf(structuredPromptTemplate, d.Role, prettyJSON(d.Instructions))
}

// prettyJSON 两空格缩进，保留原始键顺序
func prettyJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "请分析文档"
	}
	return buf.String()
}

// buildMessages 构造 system + user 两条消息
func (c *Client) buildMessages(req *Request) ([]ChatMessage, error) {
	systemPrompt := req.SystemPrompt
	if c.opts.StructuredPrompt {
		desc, err := ParsePromptDescriptor(req.SystemPrompt)
		if err != nil {
			return nil, newError(KindPromptParse, err)
		}
		systemPrompt = desc.SystemPrompt()
	}

	content := req.TextContent
	if c.opts.PrefixContent {
		content = ContentPrefix + content
	}

	return []ChatMessage{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: content},
	}, nil
}
