package handler

import (
	"errors"
	"net/http"

	"github.com/Saikrishivgar/zoho-directory/internal/service"
	"github.com/gin-gonic/gin"
)

// NotifyHandler 通知处理器
type NotifyHandler struct {
	svc *service.NotifyService
}

// NewNotifyHandler 创建通知处理器
func NewNotifyHandler(svc *service.NotifyService) *NotifyHandler {
	return &NotifyHandler{svc: svc}
}

// SendCliq 触发Cliq频道通知,上游状态码和响应体原样透传
// 传输层失败不再向上抛,返回明确的失败响应
func (h *NotifyHandler) SendCliq(c *gin.Context) {
	result, err := h.svc.SendCliq(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrWebhookNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": 0,
				"body":   "cliq webhook is not configured",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"status": 0,
			"body":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": result.Status,
		"body":   result.Body,
	})
}
