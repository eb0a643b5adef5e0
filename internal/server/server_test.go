package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"onedocs/internal/config"
	"onedocs/internal/model"
	"onedocs/internal/server/middleware"
)

func newTestServer(upstreamURL string, structured bool) *Server {
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 7080, Mode: "test"},
		AI: config.AIConfig{
			Provider: "openai",
			APIKey:   "sk-test",
			BaseURL:  upstreamURL,
			Prompt:   config.PromptConfig{Structured: structured},
		},
	}
	srv, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return srv
}

func doJSON(srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestServer_Analyze(t *testing.T) {
	Convey("POST /api/v1/analyze", t, func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer sk-test" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, "invalid key")
				return
			}
			_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"分析结果"}}]}`)
		}))
		defer upstream.Close()

		Convey("成功时返回结果", func() {
			srv := newTestServer(upstream.URL, false)
			w := doJSON(srv, http.MethodPost, "/api/v1/analyze", model.AnalyzeRequest{
				SystemPrompt: "总结",
				TextContent:  "正文",
			})
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get(middleware.RequestIDHeader), ShouldNotBeEmpty)

			var resp struct {
				Code int                       `json:"code"`
				Data model.AnalyzeResponseData `json:"data"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 0)
			So(resp.Data.Result, ShouldEqual, "分析结果")
		})

		Convey("缺少 text_content 返回 400", func() {
			srv := newTestServer(upstream.URL, false)
			w := doJSON(srv, http.MethodPost, "/api/v1/analyze", map[string]string{"system_prompt": "x"})
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("结构化提示词解析失败返回 400/40002", func() {
			srv := newTestServer(upstream.URL, true)
			w := doJSON(srv, http.MethodPost, "/api/v1/analyze", model.AnalyzeRequest{
				SystemPrompt: "not json",
				TextContent:  "正文",
			})
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var resp model.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 40002)
			So(resp.Detail, ShouldEqual, "prompt_parse")
		})

		Convey("上游 401 返回 502 并附带提示", func() {
			srv := newTestServer(upstream.URL, false)
			w := doJSON(srv, http.MethodPost, "/api/v1/analyze", model.AnalyzeRequest{
				APIKey:      "wrong",
				TextContent: "正文",
			})
			So(w.Code, ShouldEqual, http.StatusBadGateway)

			var resp model.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 50201)
			So(resp.Message, ShouldContainSubstring, "401")
			So(resp.Message, ShouldContainSubstring, "invalid key")
			So(resp.Hint, ShouldContainSubstring, "API Key")
		})
	})
}

func TestServer_Misc(t *testing.T) {
	Convey("辅助接口", t, func() {
		srv := newTestServer("http://127.0.0.1:0", false)

		Convey("健康检查", func() {
			w := doJSON(srv, http.MethodGet, "/health", nil)
			So(w.Code, ShouldEqual, http.StatusOK)

			w = doJSON(srv, http.MethodGet, "/ready", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"default_api_key":true`)
		})

		Convey("服务商列表", func() {
			w := doJSON(srv, http.MethodGet, "/api/v1/providers", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "deepseek")
		})

		Convey("CORS 预检", func() {
			w := doJSON(srv, http.MethodOptions, "/api/v1/analyze", nil)
			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
		})

		Convey("透传合法的请求 ID", func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set(middleware.RequestIDHeader, "0b6f1c1e-4f43-4d39-9d0a-2b9b7f0f7c11")
			w := httptest.NewRecorder()
			srv.Engine().ServeHTTP(w, req)
			So(w.Header().Get(middleware.RequestIDHeader), ShouldEqual, "0b6f1c1e-4f43-4d39-9d0a-2b9b7f0f7c11")
		})
	})
}
