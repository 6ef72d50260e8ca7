package handler

import (
	"errors"
	"net/http"

	"github.com/Saikrishivgar/zoho-directory/internal/repository"
	"github.com/Saikrishivgar/zoho-directory/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminHandler 管理端处理器,覆盖五类实体的维护操作
type AdminHandler struct {
	directory *service.DirectoryService
	entries   *service.ClientEntryService
	catalog   *service.CatalogService
	media     *service.MediaService
}

// NewAdminHandler 创建管理端处理器
func NewAdminHandler(
	directory *service.DirectoryService,
	entries *service.ClientEntryService,
	catalog *service.CatalogService,
	media *service.MediaService,
) *AdminHandler {
	return &AdminHandler{
		directory: directory,
		entries:   entries,
		catalog:   catalog,
		media:     media,
	}
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "record not found")
	case errors.Is(err, service.ErrSlugTaken):
		BadRequest(c, "slug already exists")
	default:
		InternalError(c, err.Error())
	}
}

// ============================================================
// 地点管理
// ============================================================

// ListLocations 地点列表
func (h *AdminHandler) ListLocations(c *gin.Context) {
	locations, err := h.directory.ListLocations(c.Request.Context(), c.Query("q"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"locations": locations})
}

// CreateLocation 创建地点
func (h *AdminHandler) CreateLocation(c *gin.Context) {
	var req service.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	location, err := h.directory.CreateLocation(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	Created(c, location)
}

// GetLocation 地点详情
func (h *AdminHandler) GetLocation(c *gin.Context) {
	location, err := h.directory.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, location)
}

// UpdateLocation 更新地点
func (h *AdminHandler) UpdateLocation(c *gin.Context) {
	var req service.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	location, err := h.directory.UpdateLocation(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	Success(c, location)
}

// DeleteLocation 删除地点
func (h *AdminHandler) DeleteLocation(c *gin.Context) {
	if err := h.directory.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// ============================================================
// 部门管理
// ============================================================

// ListDepartments 部门列表
func (h *AdminHandler) ListDepartments(c *gin.Context) {
	departments, err := h.directory.ListDepartments(c.Request.Context(), c.Query("q"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"departments": departments})
}

// CreateDepartment 创建部门
func (h *AdminHandler) CreateDepartment(c *gin.Context) {
	var req service.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	department, err := h.directory.CreateDepartment(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	Created(c, department)
}

// GetDepartment 部门详情
func (h *AdminHandler) GetDepartment(c *gin.Context) {
	department, err := h.directory.GetDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, department)
}

// UpdateDepartment 更新部门
func (h *AdminHandler) UpdateDepartment(c *gin.Context) {
	var req service.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	department, err := h.directory.UpdateDepartment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	Success(c, department)
}

// DeleteDepartment 删除部门
func (h *AdminHandler) DeleteDepartment(c *gin.Context) {
	if err := h.directory.DeleteDepartment(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// ============================================================
// 人员管理
// ============================================================

// ListPeople 人员列表,搜索字段与后台检索一致
func (h *AdminHandler) ListPeople(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword":       c.Query("q"),
		"location_id":   c.Query("location_id"),
		"department_id": c.Query("department_id"),
	}
	if verified := c.Query("verified"); verified != "" {
		filters["verified"] = verified == "true"
	}

	people, total, err := h.directory.ListPeopleAdmin(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, ListResponse{
		Items: people,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: TotalPages(total, pageSize),
		},
	})
}

// CreatePerson 创建人员
func (h *AdminHandler) CreatePerson(c *gin.Context) {
	var req service.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	person, err := h.directory.CreatePerson(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	Created(c, person)
}

// GetPerson 人员详情
func (h *AdminHandler) GetPerson(c *gin.Context) {
	person, err := h.directory.GetPerson(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, person)
}

// UpdatePerson 更新人员
func (h *AdminHandler) UpdatePerson(c *gin.Context) {
	var req service.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	person, err := h.directory.UpdatePerson(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	Success(c, person)
}

// DeletePerson 删除人员
func (h *AdminHandler) DeletePerson(c *gin.Context) {
	if err := h.directory.DeletePerson(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// ============================================================
// 客户记录管理
// ============================================================

// ListClientEntries 客户记录列表
func (h *AdminHandler) ListClientEntries(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword":       c.Query("q"),
		"location_id":   c.Query("location_id"),
		"department_id": c.Query("department_id"),
	}

	entries, total, err := h.entries.ListEntries(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, ListResponse{
		Items: entries,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: TotalPages(total, pageSize),
		},
	})
}

// DeleteClientEntry 删除客户记录
func (h *AdminHandler) DeleteClientEntry(c *gin.Context) {
	if err := h.entries.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// ============================================================
// 应用目录管理
// ============================================================

// ListApps 应用列表,检索字段为名称/标语/标签
func (h *AdminHandler) ListApps(c *gin.Context) {
	apps, err := h.catalog.ListAppsAdmin(c.Request.Context(), c.Query("q"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"apps": apps})
}

// CreateApp 创建应用
func (h *AdminHandler) CreateApp(c *gin.Context) {
	var req service.AppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	app, err := h.catalog.CreateApp(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	Created(c, app)
}

// GetApp 应用详情,id或slug
func (h *AdminHandler) GetApp(c *gin.Context) {
	app, err := h.catalog.GetApp(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, app)
}

// UpdateApp 更新应用
func (h *AdminHandler) UpdateApp(c *gin.Context) {
	var req service.AppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	app, err := h.catalog.UpdateApp(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	Success(c, app)
}

// DeleteApp 删除应用
func (h *AdminHandler) DeleteApp(c *gin.Context) {
	if err := h.catalog.DeleteApp(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// UploadIcon 上传应用图标
func (h *AdminHandler) UploadIcon(c *gin.Context) {
	h.uploadAppMedia(c, h.catalog.AttachIcon)
}

// UploadGuide 上传指南视频
func (h *AdminHandler) UploadGuide(c *gin.Context) {
	h.uploadAppMedia(c, h.catalog.AttachGuide)
}

func (h *AdminHandler) uploadAppMedia(c *gin.Context, attach service.AttachFunc) {
	if !h.media.Enabled() {
		c.JSON(http.StatusServiceUnavailable, Response{
			Code:    50300,
			Message: "object storage is not configured",
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	app, err := attach(c.Request.Context(), c.Param("id"), fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "record not found")
			return
		}
		c.JSON(http.StatusBadGateway, Response{
			Code:    50200,
			Message: err.Error(),
		})
		return
	}

	Success(c, app)
}
