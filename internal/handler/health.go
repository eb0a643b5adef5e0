package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	hasDefaultKey bool
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(hasDefaultKey bool) *HealthHandler {
	return &HealthHandler{hasDefaultKey: hasDefaultKey}
}

// Health 健康检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready 就绪检查
// 没有默认 API Key 时仍然就绪，只是每个请求都要自带 api_key
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ready",
		"default_api_key": h.hasDefaultKey,
	})
}
