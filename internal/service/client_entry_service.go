package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Saikrishivgar/zoho-directory/internal/model/entity"
	"github.com/Saikrishivgar/zoho-directory/internal/repository"
	"github.com/google/uuid"
)

// ValidationError 按字段组织的校验错误
type ValidationError struct {
	Fields map[string][]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) hasErrors() bool {
	return len(e.Fields) > 0
}

// ClientEntryService 客户记录服务
type ClientEntryService struct {
	entryRepo      *repository.ClientEntryRepository
	locationRepo   *repository.LocationRepository
	departmentRepo *repository.DepartmentRepository
}

// NewClientEntryService 创建客户记录服务
func NewClientEntryService(
	entryRepo *repository.ClientEntryRepository,
	locationRepo *repository.LocationRepository,
	departmentRepo *repository.DepartmentRepository,
) *ClientEntryService {
	return &ClientEntryService{
		entryRepo:      entryRepo,
		locationRepo:   locationRepo,
		departmentRepo: departmentRepo,
	}
}

// FormChoices 录入表单的地点与部门选项
type FormChoices struct {
	Locations   []entity.Location   `json:"locations"`
	Departments []entity.Department `json:"departments"`
}

// GetFormChoices 获取录入表单选项
func (s *ClientEntryService) GetFormChoices(ctx context.Context) (*FormChoices, error) {
	locations, err := s.locationRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	departments, err := s.departmentRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return &FormChoices{Locations: locations, Departments: departments}, nil
}

// CreateClientEntryRequest 客户记录提交字段
type CreateClientEntryRequest struct {
	Location   string `json:"location" form:"location"`
	Department string `json:"department" form:"department"`
	Name       string `json:"name" form:"name"`
	Email      string `json:"email" form:"email"`
	Notes      string `json:"notes" form:"notes"`
}

// Create 校验并创建客户记录,校验失败不落库
func (s *ClientEntryService) Create(ctx context.Context, req *CreateClientEntryRequest) (*entity.ClientEntry, error) {
	verr := newValidationError()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		verr.add("name", "This field is required.")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		verr.add("email", "This field is required.")
	} else if !validEmail(email) {
		verr.add("email", "Enter a valid email address.")
	}

	var locationID *string
	if req.Location != "" {
		if _, err := s.locationRepo.FindByID(ctx, req.Location); err != nil {
			if err == repository.ErrNotFound {
				verr.add("location", "Select a valid choice.")
			} else {
				return nil, fmt.Errorf("find location: %w", err)
			}
		} else {
			locationID = &req.Location
		}
	}

	var departmentID *string
	if req.Department != "" {
		if _, err := s.departmentRepo.FindByID(ctx, req.Department); err != nil {
			if err == repository.ErrNotFound {
				verr.add("department", "Select a valid choice.")
			} else {
				return nil, fmt.Errorf("find department: %w", err)
			}
		} else {
			departmentID = &req.Department
		}
	}

	if verr.hasErrors() {
		return nil, verr
	}

	entry := &entity.ClientEntry{
		ID:           uuid.New().String()[:32],
		LocationID:   locationID,
		DepartmentID: departmentID,
		Name:         name,
		Email:        email,
		Notes:        req.Notes,
		CreatedAt:    time.Now(),
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create client entry: %w", err)
	}

	return entry, nil
}

// validEmail 邮箱格式校验,要求带域名的单个地址
func validEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}
	// ParseAddress接受"Name <a@b>"形式,这里只允许裸地址
	if addr.Address != value {
		return false
	}
	at := strings.LastIndex(value, "@")
	return at > 0 && strings.Contains(value[at+1:], ".")
}

// ListEntries 管理端客户记录列表
func (s *ClientEntryService) ListEntries(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.ClientEntry, int64, error) {
	return s.entryRepo.List(ctx, page, pageSize, filters)
}

// DeleteEntry 删除客户记录
func (s *ClientEntryService) DeleteEntry(ctx context.Context, id string) error {
	if _, err := s.entryRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.entryRepo.Delete(ctx, id)
}
