package handler

import (
	"errors"

	"github.com/Saikrishivgar/zoho-directory/internal/repository"
	"github.com/Saikrishivgar/zoho-directory/internal/service"
	"github.com/gin-gonic/gin"
)

// DirectoryHandler 通讯录处理器
type DirectoryHandler struct {
	svc *service.DirectoryService
}

// NewDirectoryHandler 创建通讯录处理器
func NewDirectoryHandler(svc *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

// ListPeople 人员列表,支持location过滤与q搜索
func (h *DirectoryHandler) ListPeople(c *gin.Context) {
	locationID := c.Query("location")
	q := c.Query("q")

	result, err := h.svc.ListPeople(c.Request.Context(), locationID, q)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, result)
}

// GetPerson 人员详情
func (h *DirectoryHandler) GetPerson(c *gin.Context) {
	id := c.Param("id")

	person, err := h.svc.GetPerson(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "person not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, person)
}

// DepartmentTree 部门树
func (h *DirectoryHandler) DepartmentTree(c *gin.Context) {
	tree, err := h.svc.DepartmentTree(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, gin.H{"departments": tree})
}
