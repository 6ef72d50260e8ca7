package handler

import (
	"errors"
	"net/http"

	"github.com/Saikrishivgar/zoho-directory/internal/service"
	"github.com/gin-gonic/gin"
)

// ClientEntryHandler 客户记录处理器
type ClientEntryHandler struct {
	svc *service.ClientEntryService
}

// NewClientEntryHandler 创建客户记录处理器
func NewClientEntryHandler(svc *service.ClientEntryService) *ClientEntryHandler {
	return &ClientEntryHandler{svc: svc}
}

// Form 录入表单的地点与部门选项
func (h *ClientEntryHandler) Form(c *gin.Context) {
	choices, err := h.svc.GetFormChoices(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, choices)
}

// Create 提交客户记录
// 响应体契约固定:成功{ok,entry},校验失败按字段返回{ok,errors}
func (h *ClientEntryHandler) Create(c *gin.Context) {
	var req service.CreateClientEntryRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":     false,
				"errors": verr.Fields,
			})
			return
		}
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"entry": gin.H{
			"id":         entry.ID,
			"location":   entry.LocationID,
			"department": entry.DepartmentID,
			"name":       entry.Name,
			"email":      entry.Email,
			"notes":      entry.Notes,
		},
	})
}
