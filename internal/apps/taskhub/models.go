package taskhub

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusInReview   TaskStatus = "in_review"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInReview, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type ProjectRole string

const (
	RoleMember  ProjectRole = "member"
	RoleManager ProjectRole = "manager"
)

type Project struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID       string          `gorm:"size:50;not null;index" json:"-"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Color       string          `gorm:"size:7" json:"color"`
	Status      string          `gorm:"size:20;default:'active'" json:"status"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
	Members     []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
}

type ProjectMember struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID     string      `gorm:"size:50;not null;index" json:"-"`
	ProjectID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_project_members_proj_user" json:"project_id"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_project_members_proj_user" json:"user_id"`
	Role      ProjectRole `gorm:"size:20;default:'member'" json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// Task supports one level of subtasking: a task with a parent cannot itself
// be a parent.
type Task struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID          string         `gorm:"size:50;not null;index" json:"-"`
	ProjectID      *uuid.UUID     `gorm:"type:uuid;index" json:"project_id,omitempty"`
	ParentID       *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         TaskStatus     `gorm:"size:20;default:'todo';index" json:"status"`
	Priority       TaskPriority   `gorm:"size:10;default:'medium';index" json:"priority"`
	CreatorID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"creator_id"`
	AssigneeID     *uuid.UUID     `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	DueDate        *time.Time     `gorm:"index" json:"due_date,omitempty"`
	EstimatedHours *float64       `json:"estimated_hours,omitempty"`
	ActualHours    *float64       `json:"actual_hours,omitempty"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Subtasks       []Task         `gorm:"foreignKey:ParentID" json:"subtasks,omitempty"`
	Comments       []Comment      `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	Tags           []Tag          `gorm:"many2many:task_tags;" json:"tags,omitempty"`
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID     string    `gorm:"size:50;not null;index" json:"-"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID string    `gorm:"size:50;not null;uniqueIndex:idx_tags_app_name" json:"-"`
	Name  string    `gorm:"size:50;not null;uniqueIndex:idx_tags_app_name" json:"name"`
	Color string    `gorm:"size:7" json:"color"`
}

// --- DTOs ---

type CreateTaskRequest struct {
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Status         string      `json:"status"`
	Priority       string      `json:"priority"`
	ProjectID      *uuid.UUID  `json:"project_id"`
	ParentID       *uuid.UUID  `json:"parent_id"`
	AssigneeID     *uuid.UUID  `json:"assignee_id"`
	DueDate        *time.Time  `json:"due_date"`
	EstimatedHours *float64    `json:"estimated_hours"`
	TagIDs         []uuid.UUID `json:"tag_ids"`
}

type UpdateTaskRequest struct {
	Title          *string      `json:"title"`
	Description    *string      `json:"description"`
	Status         *string      `json:"status"`
	Priority       *string      `json:"priority"`
	AssigneeID     *uuid.UUID   `json:"assignee_id"`
	DueDate        *time.Time   `json:"due_date"`
	EstimatedHours *float64     `json:"estimated_hours"`
	ActualHours    *float64     `json:"actual_hours"`
	TagIDs         *[]uuid.UUID `json:"tag_ids"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Status      *string `json:"status"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TaskStats struct {
	Total          int64                  `json:"total"`
	ByStatus       map[TaskStatus]int64   `json:"by_status"`
	ByPriority     map[TaskPriority]int64 `json:"by_priority"`
	Overdue        int64                  `json:"overdue"`
	CompletionRate float64                `json:"completion_rate"`
}
