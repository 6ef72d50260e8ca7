package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Saikrishivgar/zoho-directory/internal/model/entity"
	"github.com/Saikrishivgar/zoho-directory/internal/repository"
	"github.com/google/uuid"
)

// DirectoryService 通讯录服务:人员、地点、部门
type DirectoryService struct {
	personRepo     *repository.PersonRepository
	locationRepo   *repository.LocationRepository
	departmentRepo *repository.DepartmentRepository
}

// NewDirectoryService 创建通讯录服务
func NewDirectoryService(
	personRepo *repository.PersonRepository,
	locationRepo *repository.LocationRepository,
	departmentRepo *repository.DepartmentRepository,
) *DirectoryService {
	return &DirectoryService{
		personRepo:     personRepo,
		locationRepo:   locationRepo,
		departmentRepo: departmentRepo,
	}
}

// PersonView 人员展示记录
type PersonView struct {
	ID           string  `json:"id"`
	DisplayLabel string  `json:"display_label"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Role         string  `json:"role"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	CliqHandle   string  `json:"cliq_handle"`
	DeskNumber   string  `json:"desk_number"`
	Verified     bool    `json:"verified"`
	Location     *string `json:"location"`
	Department   *string `json:"department"`
}

// PeopleListResult 人员列表结果,带地点列表与回显的查询词
type PeopleListResult struct {
	People    []PersonView      `json:"people"`
	Locations []entity.Location `json:"locations"`
	Query     string            `json:"q"`
}

// ListPeople 人员列表,支持地点过滤与关键字搜索
func (s *DirectoryService) ListPeople(ctx context.Context, locationID, q string) (*PeopleListResult, error) {
	people, err := s.personRepo.Search(ctx, locationID, q)
	if err != nil {
		return nil, fmt.Errorf("search people: %w", err)
	}

	locations, err := s.locationRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	views := make([]PersonView, 0, len(people))
	for i := range people {
		views = append(views, buildPersonView(&people[i]))
	}

	return &PeopleListResult{
		People:    views,
		Locations: locations,
		Query:     q,
	}, nil
}

func buildPersonView(p *entity.Person) PersonView {
	view := PersonView{
		ID:           p.ID,
		DisplayLabel: p.DisplayLabel(),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Role:         p.Role,
		Email:        p.Email,
		Phone:        p.Phone,
		CliqHandle:   p.CliqHandle,
		DeskNumber:   p.DeskNumber,
		Verified:     p.Verified,
	}
	if p.Location != nil {
		view.Location = &p.Location.Name
	}
	if p.Department != nil {
		view.Department = &p.Department.Name
	}
	return view
}

// GetPerson 人员详情,含直接下属
func (s *DirectoryService) GetPerson(ctx context.Context, id string) (*entity.Person, error) {
	person, err := s.personRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reports, err := s.personRepo.FindReports(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}
	person.Reports = reports

	return person, nil
}

// DepartmentNode 部门树节点
type DepartmentNode struct {
	Department entity.Department `json:"department"`
	Children   []*DepartmentNode `json:"children"`
}

// DepartmentTree 读取时构建部门树:父引用倒排成 id→children 索引
// 父链成环的节点按根处理,遍历不会陷入死循环
func (s *DirectoryService) DepartmentTree(ctx context.Context) ([]*DepartmentNode, error) {
	departments, err := s.departmentRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return BuildDepartmentTree(departments), nil
}

// BuildDepartmentTree 由平面部门列表构建森林
func BuildDepartmentTree(departments []entity.Department) []*DepartmentNode {
	nodes := make(map[string]*DepartmentNode, len(departments))
	for i := range departments {
		d := departments[i]
		d.Parent = nil
		d.Children = nil
		nodes[d.ID] = &DepartmentNode{Department: d}
	}

	parents := make(map[string]*string, len(departments))
	for i := range departments {
		parents[departments[i].ID] = departments[i].ParentID
	}

	var roots []*DepartmentNode
	for _, dept := range departments {
		node := nodes[dept.ID]
		if dept.ParentID == nil || nodes[*dept.ParentID] == nil {
			roots = append(roots, node)
			continue
		}
		// 环检测:沿父链上行,回到自身则视为根
		if onOwnAncestry(dept.ID, *dept.ParentID, parents) {
			roots = append(roots, node)
			continue
		}
		parent := nodes[*dept.ParentID]
		parent.Children = append(parent.Children, node)
	}

	return roots
}

func onOwnAncestry(id, parentID string, parents map[string]*string) bool {
	seen := map[string]bool{}
	cur := parentID
	for {
		if cur == id {
			return true
		}
		// 祖先链里有环但不含自身:终止遍历,节点照常挂在父节点下
		if seen[cur] {
			return false
		}
		seen[cur] = true
		next, ok := parents[cur]
		if !ok || next == nil {
			return false
		}
		cur = *next
	}
}

// ListLocations 地点列表
func (s *DirectoryService) ListLocations(ctx context.Context, keyword string) ([]entity.Location, error) {
	return s.locationRepo.List(ctx, keyword)
}

// ListDepartments 部门列表
func (s *DirectoryService) ListDepartments(ctx context.Context, keyword string) ([]entity.Department, error) {
	return s.departmentRepo.List(ctx, keyword)
}

// ============================================================
// 管理端操作
// ============================================================

// LocationRequest 地点创建/更新请求
type LocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

// CreateLocation 创建地点
func (s *DirectoryService) CreateLocation(ctx context.Context, req *LocationRequest) (*entity.Location, error) {
	now := time.Now()
	location := &entity.Location{
		ID:        uuid.New().String()[:32],
		Name:      req.Name,
		Address:   req.Address,
		Timezone:  req.Timezone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return location, nil
}

// GetLocation 地点详情
func (s *DirectoryService) GetLocation(ctx context.Context, id string) (*entity.Location, error) {
	return s.locationRepo.FindByID(ctx, id)
}

// UpdateLocation 更新地点
func (s *DirectoryService) UpdateLocation(ctx context.Context, id string, req *LocationRequest) (*entity.Location, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	location.Name = req.Name
	location.Address = req.Address
	location.Timezone = req.Timezone
	location.UpdatedAt = time.Now()
	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, fmt.Errorf("update location: %w", err)
	}
	return location, nil
}

// DeleteLocation 删除地点
func (s *DirectoryService) DeleteLocation(ctx context.Context, id string) error {
	if _, err := s.locationRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.locationRepo.Delete(ctx, id)
}

// DepartmentRequest 部门创建/更新请求
type DepartmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
}

// CreateDepartment 创建部门,父引用不做环校验,与来源行为一致
func (s *DirectoryService) CreateDepartment(ctx context.Context, req *DepartmentRequest) (*entity.Department, error) {
	now := time.Now()
	department := &entity.Department{
		ID:          uuid.New().String()[:32],
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, fmt.Errorf("create department: %w", err)
	}
	return department, nil
}

// GetDepartment 部门详情
func (s *DirectoryService) GetDepartment(ctx context.Context, id string) (*entity.Department, error) {
	return s.departmentRepo.FindByID(ctx, id)
}

// UpdateDepartment 更新部门
func (s *DirectoryService) UpdateDepartment(ctx context.Context, id string, req *DepartmentRequest) (*entity.Department, error) {
	department, err := s.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	department.Name = req.Name
	department.Description = req.Description
	department.ParentID = req.ParentID
	department.Parent = nil
	department.UpdatedAt = time.Now()
	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, fmt.Errorf("update department: %w", err)
	}
	return department, nil
}

// DeleteDepartment 删除部门
func (s *DirectoryService) DeleteDepartment(ctx context.Context, id string) error {
	if _, err := s.departmentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.departmentRepo.Delete(ctx, id)
}

// PersonRequest 人员创建/更新请求
type PersonRequest struct {
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name"`
	DisplayName  string  `json:"display_name"`
	LocationID   *string `json:"location_id"`
	DepartmentID *string `json:"department_id"`
	ManagerID    *string `json:"manager_id"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	CliqHandle   string  `json:"cliq_handle"`
	DeskNumber   string  `json:"desk_number"`
	Role         string  `json:"role"`
	Bio          string  `json:"bio"`
	Verified     bool    `json:"verified"`
}

// ListPeopleAdmin 管理端人员列表
func (s *DirectoryService) ListPeopleAdmin(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Person, int64, error) {
	return s.personRepo.List(ctx, page, pageSize, filters)
}

// CreatePerson 创建人员
func (s *DirectoryService) CreatePerson(ctx context.Context, req *PersonRequest) (*entity.Person, error) {
	now := time.Now()
	person := &entity.Person{
		ID:           uuid.New().String()[:32],
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DisplayName:  req.DisplayName,
		LocationID:   req.LocationID,
		DepartmentID: req.DepartmentID,
		ManagerID:    req.ManagerID,
		Email:        req.Email,
		Phone:        req.Phone,
		CliqHandle:   req.CliqHandle,
		DeskNumber:   req.DeskNumber,
		Role:         req.Role,
		Bio:          req.Bio,
		Verified:     req.Verified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	return person, nil
}

// UpdatePerson 更新人员,updated_at刷新,created_at保持不变
func (s *DirectoryService) UpdatePerson(ctx context.Context, id string, req *PersonRequest) (*entity.Person, error) {
	person, err := s.personRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	person.FirstName = req.FirstName
	person.LastName = req.LastName
	person.DisplayName = req.DisplayName
	person.LocationID = req.LocationID
	person.DepartmentID = req.DepartmentID
	person.ManagerID = req.ManagerID
	person.Email = req.Email
	person.Phone = req.Phone
	person.CliqHandle = req.CliqHandle
	person.DeskNumber = req.DeskNumber
	person.Role = req.Role
	person.Bio = req.Bio
	person.Verified = req.Verified
	person.Location = nil
	person.Department = nil
	person.Manager = nil
	person.UpdatedAt = time.Now()
	if err := s.personRepo.Update(ctx, person); err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}
	return person, nil
}

// DeletePerson 删除人员
func (s *DirectoryService) DeletePerson(ctx context.Context, id string) error {
	if _, err := s.personRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.personRepo.Delete(ctx, id)
}
