package handler

import (
	"github.com/Saikrishivgar/zoho-directory/internal/service"
	"github.com/gin-gonic/gin"
)

// CatalogHandler 应用目录处理器
type CatalogHandler struct {
	svc *service.CatalogService
}

// NewCatalogHandler 创建应用目录处理器
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListApps 目录列表,支持q搜索
func (h *CatalogHandler) ListApps(c *gin.Context) {
	result, err := h.svc.ListApps(c.Request.Context(), c.Query("q"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, result)
}
