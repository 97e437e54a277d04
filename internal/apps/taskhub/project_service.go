package taskhub

import (
	"errors"

	"github.com/creatorsuite/suite-backend/internal/models"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrNotProjectOwner  = errors.New("only the owner or a manager can do this")
	ErrMemberExists     = errors.New("user is already a project member")
	ErrMemberNotFound   = errors.New("project member not found")
	ErrCannotDropOwner  = errors.New("the project owner cannot be removed")
	ErrTagExists        = errors.New("tag name already exists")
	ErrTagNotFound      = errors.New("tag not found")
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidProjState = errors.New("invalid project status")
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) Create(appID string, userID uuid.UUID, req CreateProjectRequest) (*Project, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}

	project := Project{
		ID:          uuid.New(),
		AppID:       appID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Status:      "active",
		OwnerID:     userID,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	// The owner is also a manager-level member so membership queries stay simple.
	member := ProjectMember{
		ID:        uuid.New(),
		AppID:     appID,
		ProjectID: project.ID,
		UserID:    userID,
		Role:      RoleManager,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// List returns the projects the user owns or is a member of.
func (s *ProjectService) List(appID string, userID uuid.UUID) ([]Project, error) {
	sub := s.db.Model(&ProjectMember{}).
		Select("project_id").
		Where("app_id = ? AND user_id = ?", appID, userID)

	var projects []Project
	err := s.db.Scopes(tenant.ForTenant(appID)).
		Where("owner_id = ? OR id IN (?)", userID, sub).
		Preload("Members").
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (s *ProjectService) Get(appID string, userID uuid.UUID, projectID uuid.UUID) (*Project, error) {
	var project Project
	err := s.db.Scopes(tenant.ForTenant(appID)).
		Preload("Members").
		First(&project, "id = ?", projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	if !s.hasRole(appID, projectID, userID, project.OwnerID, RoleMember) {
		return nil, ErrNotVisible
	}
	return &project, nil
}

// hasRole reports whether the user holds at least the given role on the
// project. The owner passes every check.
func (s *ProjectService) hasRole(appID string, projectID, userID, ownerID uuid.UUID, role ProjectRole) bool {
	if userID == ownerID {
		return true
	}

	var member ProjectMember
	err := s.db.Where("app_id = ? AND project_id = ? AND user_id = ?", appID, projectID, userID).
		First(&member).Error
	if err != nil {
		return false
	}
	if role == RoleManager {
		return member.Role == RoleManager
	}
	return true
}

func (s *ProjectService) Update(appID string, userID uuid.UUID, projectID uuid.UUID, req UpdateProjectRequest) (*Project, error) {
	project, err := s.Get(appID, userID, projectID)
	if err != nil {
		return nil, err
	}
	if !s.hasRole(appID, projectID, userID, project.OwnerID, RoleManager) {
		return nil, ErrNotProjectOwner
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Color != nil {
		project.Color = *req.Color
	}
	if req.Status != nil {
		if *req.Status != "active" && *req.Status != "archived" {
			return nil, ErrInvalidProjState
		}
		project.Status = *req.Status
	}

	if err := s.db.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(appID string, userID uuid.UUID, projectID uuid.UUID) error {
	project, err := s.Get(appID, userID, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != userID {
		return ErrNotProjectOwner
	}

	if err := s.db.Where("app_id = ? AND project_id = ?", appID, projectID).
		Delete(&ProjectMember{}).Error; err != nil {
		return err
	}
	return s.db.Delete(project).Error
}

func (s *ProjectService) AddMember(appID string, userID uuid.UUID, projectID uuid.UUID, req AddMemberRequest) (*ProjectMember, error) {
	project, err := s.Get(appID, userID, projectID)
	if err != nil {
		return nil, err
	}
	if !s.hasRole(appID, projectID, userID, project.OwnerID, RoleManager) {
		return nil, ErrNotProjectOwner
	}

	var target models.User
	if err := s.db.Scopes(tenant.ForTenant(appID)).First(&target, "id = ?", req.UserID).Error; err != nil {
		return nil, ErrAssigneeInvalid
	}

	var existing ProjectMember
	err = s.db.Where("app_id = ? AND project_id = ? AND user_id = ?", appID, projectID, req.UserID).
		First(&existing).Error
	if err == nil {
		return nil, ErrMemberExists
	}

	role := RoleMember
	if ProjectRole(req.Role) == RoleManager {
		role = RoleManager
	}

	member := ProjectMember{
		ID:        uuid.New(),
		AppID:     appID,
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      role,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *ProjectService) RemoveMember(appID string, userID uuid.UUID, projectID, memberUserID uuid.UUID) error {
	project, err := s.Get(appID, userID, projectID)
	if err != nil {
		return err
	}
	if !s.hasRole(appID, projectID, userID, project.OwnerID, RoleManager) {
		return ErrNotProjectOwner
	}
	if memberUserID == project.OwnerID {
		return ErrCannotDropOwner
	}

	result := s.db.Where("app_id = ? AND project_id = ? AND user_id = ?", appID, projectID, memberUserID).
		Delete(&ProjectMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// --- Tags ---

func (s *ProjectService) ListTags(appID string) ([]Tag, error) {
	var tags []Tag
	err := s.db.Scopes(tenant.ForTenant(appID)).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (s *ProjectService) CreateTag(appID string, req CreateTagRequest) (*Tag, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}

	var existing Tag
	if err := s.db.Scopes(tenant.ForTenant(appID)).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, ErrTagExists
	}

	tag := Tag{
		ID:    uuid.New(),
		AppID: appID,
		Name:  req.Name,
		Color: req.Color,
	}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *ProjectService) DeleteTag(appID string, tagID uuid.UUID) error {
	result := s.db.Scopes(tenant.ForTenant(appID)).Where("id = ?", tagID).Delete(&Tag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}
