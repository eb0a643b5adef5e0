package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"onedocs/internal/ai/analyzer"
	"onedocs/internal/config"
	"onedocs/internal/model"
)

// captured 上游收到的最后一个请求
type captured struct {
	mu     sync.Mutex
	auth   string
	body   analyzer.ChatRequest
	called int
}

func newFakeUpstream(c *captured, status int, reply string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.called++
		c.auth = r.Header.Get("Authorization")
		_ = json.Unmarshal(data, &c.body)
		c.mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
}

func TestAnalyzeService_Analyze(t *testing.T) {
	Convey("AnalyzeService 用配置补全请求", t, func() {
		c := &captured{}
		upstream := newFakeUpstream(c, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"摘要"}}]}`)
		defer upstream.Close()

		cfg := &config.AIConfig{
			Provider: "deepseek",
			APIKey:   "sk-config",
			BaseURL:  upstream.URL,
			Prompt:   config.PromptConfig{PrefixContent: true},
		}
		svc := NewAnalyzeService(cfg)

		Convey("缺省字段取配置与预设", func() {
			got, err := svc.Analyze(context.Background(), &model.AnalyzeRequest{
				SystemPrompt: "总结要点",
				TextContent:  "正文",
			})
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "摘要")

			c.mu.Lock()
			defer c.mu.Unlock()
			So(c.auth, ShouldEqual, "Bearer sk-config")
			So(c.body.Model, ShouldEqual, "deepseek-chat")
			So(c.body.Messages[1].Content, ShouldEqual, analyzer.ContentPrefix+"正文")
		})

		Convey("请求中的字段优先于配置", func() {
			_, err := svc.Analyze(context.Background(), &model.AnalyzeRequest{
				APIKey:      "sk-request",
				APIBaseURL:  upstream.URL + "/",
				TextContent: "正文",
				Model:       "deepseek-reasoner",
			})
			So(err, ShouldBeNil)

			c.mu.Lock()
			defer c.mu.Unlock()
			So(c.auth, ShouldEqual, "Bearer sk-request")
			So(c.body.Model, ShouldEqual, "deepseek-reasoner")
		})

		Convey("请求未指定模型时使用配置的模型而不是预设", func() {
			cfg.Provider = "openai"
			cfg.Model = "gpt-4o-mini"
			_, err := NewAnalyzeService(cfg).Analyze(context.Background(), &model.AnalyzeRequest{
				TextContent: "正文",
			})
			So(err, ShouldBeNil)

			c.mu.Lock()
			defer c.mu.Unlock()
			So(c.body.Model, ShouldEqual, "gpt-4o-mini")
		})

		Convey("配置 temperature 为 0 时照常发送", func() {
			zero := 0.0
			cfg.Options = config.AIOptionsConfig{GenerationParams: true, Temperature: &zero}
			_, err := NewAnalyzeService(cfg).Analyze(context.Background(), &model.AnalyzeRequest{
				TextContent: "正文",
			})
			So(err, ShouldBeNil)

			c.mu.Lock()
			defer c.mu.Unlock()
			So(c.body.Temperature, ShouldNotBeNil)
			So(*c.body.Temperature, ShouldEqual, 0.0)
		})

		Convey("没有 API Key 时不发请求", func() {
			cfg.APIKey = ""
			_, err := NewAnalyzeService(cfg).Analyze(context.Background(), &model.AnalyzeRequest{TextContent: "正文"})
			So(errors.Is(err, ErrMissingAPIKey), ShouldBeTrue)

			c.mu.Lock()
			defer c.mu.Unlock()
			So(c.called, ShouldEqual, 0)
		})
	})
}

func TestAnalyzeService_TestConnection(t *testing.T) {
	Convey("TestConnection 在结构化模式下也使用纯文本提示词", t, func() {
		c := &captured{}
		upstream := newFakeUpstream(c, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`)
		defer upstream.Close()

		cfg := &config.AIConfig{
			Provider: "openai",
			APIKey:   "sk",
			BaseURL:  upstream.URL,
			Prompt:   config.PromptConfig{Structured: true, PrefixContent: true},
		}

		err := NewAnalyzeService(cfg).TestConnection(context.Background(), &model.TestConnectionRequest{})
		So(err, ShouldBeNil)

		c.mu.Lock()
		defer c.mu.Unlock()
		So(c.body.Messages[0].Content, ShouldEqual, testConnectionPrompt)
		So(c.body.Messages[1].Content, ShouldEqual, testConnectionContent)
	})

	Convey("上游拒绝时返回 HTTP 状态错误", t, func() {
		c := &captured{}
		upstream := newFakeUpstream(c, http.StatusUnauthorized, `{"error":"invalid key"}`)
		defer upstream.Close()

		cfg := &config.AIConfig{Provider: "openai", APIKey: "bad", BaseURL: upstream.URL}
		err := NewAnalyzeService(cfg).TestConnection(context.Background(), &model.TestConnectionRequest{})
		So(analyzer.KindOf(err), ShouldEqual, analyzer.KindHTTPStatus)
		So(err.Error(), ShouldContainSubstring, "invalid key")
	})
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(&config.AIConfig{Provider: "glm"})
	if opts.DefaultModel != "glm-4-flash" {
		t.Errorf("DefaultModel = %q, want glm-4-flash", opts.DefaultModel)
	}
	if opts.Completer != nil {
		t.Errorf("http engine should leave Completer nil")
	}

	opts = OptionsFromConfig(&config.AIConfig{Provider: "ark", Engine: "eino", Model: "custom"})
	if opts.DefaultModel != "custom" {
		t.Errorf("DefaultModel = %q, want custom", opts.DefaultModel)
	}
	if _, ok := opts.Completer.(*analyzer.EinoCompleter); !ok {
		t.Errorf("eino engine should use EinoCompleter, got %T", opts.Completer)
	}
}
