package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"onedocs/internal/ai/analyzer"
	"onedocs/internal/ai/provider"
	"onedocs/internal/model"
	"onedocs/internal/service"
)

// AnalyzeHandler 文档分析处理器
type AnalyzeHandler struct {
	analyzeSvc *service.AnalyzeService
}

// NewAnalyzeHandler 创建文档分析处理器
func NewAnalyzeHandler(analyzeSvc *service.AnalyzeService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzeSvc: analyzeSvc,
	}
}

// Analyze 文档分析
// @Summary      分析文档内容
// @Description  把文档内容连同系统提示词发给 OpenAI 兼容接口，返回模型回复
// @Tags         分析
// @Accept       json
// @Produce      json
// @Param        request  body      model.AnalyzeRequest  true  "分析请求"
// @Success      200      {object}  model.SuccessResponse
// @Failure      400      {object}  model.ErrorResponse  "请求参数错误或提示词解析失败"
// @Failure      502      {object}  model.ErrorResponse  "上游服务调用失败"
// @Router       /api/v1/analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	result, err := h.analyzeSvc.Analyze(c.Request.Context(), &req)
	if err != nil {
		writeAnalyzeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("分析完成", model.AnalyzeResponseData{
		Result: result,
	}))
}

// TestConnection 连接测试
// @Summary      测试 API 连接
// @Tags         分析
// @Accept       json
// @Produce      json
// @Param        request  body      model.TestConnectionRequest  true  "连接测试请求"
// @Success      200      {object}  model.SuccessResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /api/v1/analyze/test [post]
func (h *AnalyzeHandler) TestConnection(c *gin.Context) {
	var req model.TestConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	if err := h.analyzeSvc.TestConnection(c.Request.Context(), &req); err != nil {
		writeAnalyzeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("连接正常", nil))
}

// ListProviders 服务商预设列表
// @Summary      列出服务商预设
// @Tags         分析
// @Produce      json
// @Success      200  {object}  model.SuccessResponse
// @Router       /api/v1/providers [get]
func (h *AnalyzeHandler) ListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, model.NewSuccessResponse("ok", provider.All()))
}

// writeAnalyzeError 按失败阶段映射 HTTP 状态码
func writeAnalyzeError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	code := 50202

	switch {
	case errors.Is(err, service.ErrMissingAPIKey):
		status, code = http.StatusBadRequest, 40003
	case analyzer.KindOf(err) == analyzer.KindPromptParse:
		status, code = http.StatusBadRequest, 40002
	case analyzer.KindOf(err) == analyzer.KindHTTPStatus:
		code = 50201
	}

	c.JSON(status, model.ErrorResponse{
		Code:    code,
		Message: err.Error(),
		Detail:  analyzer.KindOf(err).String(),
		Hint:    analyzer.Hint(err),
	})
}
