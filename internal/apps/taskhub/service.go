package taskhub

import (
	"errors"
	"time"

	"github.com/creatorsuite/suite-backend/internal/dto"
	"github.com/creatorsuite/suite-backend/internal/models"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotVisible       = errors.New("you do not have access to this task")
	ErrNotCreator       = errors.New("only the creator can delete a task")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrTitleRequired    = errors.New("title is required")
	ErrAssigneeInvalid  = errors.New("assignee does not exist or is inactive")
	ErrParentInvalid    = errors.New("parent task not found or already a subtask")
	ErrNotProjectMember = errors.New("you are not a member of this project")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrInvalidDueBucket = errors.New("invalid due date bucket")
	ErrContentRequired  = errors.New("comment content is required")
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// memberProjectIDs is a subquery of projects the user owns or belongs to.
func (s *TaskService) memberProjectIDs(appID string, userID uuid.UUID) *gorm.DB {
	return s.db.Model(&ProjectMember{}).
		Select("project_id").
		Where("app_id = ? AND user_id = ?", appID, userID)
}

// visibleScope restricts a task query to records the user may see:
// own, assigned, or belonging to a project they are a member of.
func (s *TaskService) visibleScope(appID string, userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	sub := s.memberProjectIDs(appID, userID)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("app_id = ?", appID).
			Where("creator_id = ? OR assignee_id = ? OR project_id IN (?)", userID, userID, sub)
	}
}

func (s *TaskService) isProjectMember(appID string, projectID, userID uuid.UUID) (bool, error) {
	var project Project
	if err := s.db.Scopes(tenant.ForTenant(appID)).First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if project.OwnerID == userID {
		return true, nil
	}

	var count int64
	err := s.db.Model(&ProjectMember{}).
		Where("app_id = ? AND project_id = ? AND user_id = ?", appID, projectID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *TaskService) validateAssignee(appID string, assigneeID uuid.UUID) error {
	var assignee models.User
	if err := s.db.Scopes(tenant.ForTenant(appID)).First(&assignee, "id = ?", assigneeID).Error; err != nil {
		return ErrAssigneeInvalid
	}
	if !assignee.IsActive {
		return ErrAssigneeInvalid
	}
	return nil
}

func (s *TaskService) Create(appID string, userID uuid.UUID, req CreateTaskRequest) (*Task, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}

	status := StatusTodo
	if req.Status != "" {
		status = TaskStatus(req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	priority := PriorityMedium
	if req.Priority != "" {
		priority = TaskPriority(req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
	}

	if req.ProjectID != nil {
		member, err := s.isProjectMember(appID, *req.ProjectID, userID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrNotProjectMember
		}
	}

	if req.ParentID != nil {
		var parent Task
		err := s.db.Scopes(s.visibleScope(appID, userID)).First(&parent, "id = ?", *req.ParentID).Error
		if err != nil || parent.ParentID != nil {
			return nil, ErrParentInvalid
		}
	}

	if req.AssigneeID != nil {
		if err := s.validateAssignee(appID, *req.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := Task{
		ID:             uuid.New(),
		AppID:          appID,
		ProjectID:      req.ProjectID,
		ParentID:       req.ParentID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         status,
		Priority:       priority,
		CreatorID:      userID,
		AssigneeID:     req.AssigneeID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
	}
	if status == StatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	if len(req.TagIDs) > 0 {
		if err := s.replaceTags(&task, req.TagIDs); err != nil {
			return nil, err
		}
	}

	return &task, nil
}

func (s *TaskService) Get(appID string, userID uuid.UUID, taskID uuid.UUID) (*Task, error) {
	var task Task
	err := s.db.Scopes(tenant.ForTenant(appID)).
		Preload("Tags").
		Preload("Subtasks").
		First(&task, "id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	visible, err := s.canSee(appID, userID, &task)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrNotVisible
	}
	return &task, nil
}

func (s *TaskService) canSee(appID string, userID uuid.UUID, task *Task) (bool, error) {
	if task.CreatorID == userID {
		return true, nil
	}
	if task.AssigneeID != nil && *task.AssigneeID == userID {
		return true, nil
	}
	if task.ProjectID != nil {
		return s.isProjectMember(appID, *task.ProjectID, userID)
	}
	return false, nil
}

func (s *TaskService) Update(appID string, userID uuid.UUID, taskID uuid.UUID, req UpdateTaskRequest) (*Task, error) {
	task, err := s.Get(appID, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		p := TaskPriority(*req.Priority)
		if !p.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = p
	}
	if req.Status != nil {
		next := TaskStatus(*req.Status)
		if !next.Valid() {
			return nil, ErrInvalidStatus
		}
		transitionStatus(task, next, time.Now())
	}
	if req.AssigneeID != nil {
		if err := s.validateAssignee(appID, *req.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = req.AssigneeID
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.EstimatedHours != nil {
		task.EstimatedHours = req.EstimatedHours
	}
	if req.ActualHours != nil {
		task.ActualHours = req.ActualHours
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, err
	}

	if req.TagIDs != nil {
		if err := s.replaceTags(task, *req.TagIDs); err != nil {
			return nil, err
		}
	}

	return task, nil
}

// transitionStatus keeps the completion timestamp in lockstep with status:
// set exactly when a task enters completed, cleared when it leaves.
func transitionStatus(task *Task, next TaskStatus, now time.Time) {
	if next == StatusCompleted && task.Status != StatusCompleted {
		task.CompletedAt = &now
	}
	if next != StatusCompleted && task.Status == StatusCompleted {
		task.CompletedAt = nil
	}
	task.Status = next
}

func (s *TaskService) Delete(appID string, userID uuid.UUID, taskID uuid.UUID) error {
	task, err := s.Get(appID, userID, taskID)
	if err != nil {
		return err
	}
	if task.CreatorID != userID {
		return ErrNotCreator
	}
	return s.db.Delete(task).Error
}

func (s *TaskService) replaceTags(task *Task, tagIDs []uuid.UUID) error {
	var tags []Tag
	if len(tagIDs) > 0 {
		if err := s.db.Where("app_id = ? AND id IN ?", task.AppID, tagIDs).Find(&tags).Error; err != nil {
			return err
		}
	}
	return s.db.Model(task).Association("Tags").Replace(tags)
}

// List applies the filter set on top of the visibility scope and returns one
// page plus pagination metadata.
func (s *TaskService) List(appID string, userID uuid.UUID, filter TaskFilter) ([]Task, dto.Pagination, error) {
	page, limit := dto.NormalizePage(filter.Page, filter.Limit)

	q := s.db.Model(&Task{}).Scopes(s.visibleScope(appID, userID))

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, dto.Pagination{}, ErrInvalidStatus
		}
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		if !filter.Priority.Valid() {
			return nil, dto.Pagination{}, ErrInvalidPriority
		}
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.ProjectID != nil {
		q = q.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.ParentID != nil {
		q = q.Where("parent_id = ?", *filter.ParentID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if filter.DueBucket != "" {
		now := time.Now()
		if filter.DueBucket == BucketOverdue {
			q = q.Where("due_date < ? AND status NOT IN ?", startOfDay(now), terminalStatuses)
		} else {
			start, end, ok := dueBucketRange(filter.DueBucket, now)
			if !ok {
				return nil, dto.Pagination{}, ErrInvalidDueBucket
			}
			q = q.Where("due_date >= ? AND due_date < ?", start, end)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, err
	}

	var tasks []Task
	err := q.Preload("Tags").
		Order(filter.OrderClause()).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	return tasks, dto.NewPagination(page, limit, total), nil
}

// Stats aggregates the user's visible tasks by status and priority.
func (s *TaskService) Stats(appID string, userID uuid.UUID) (*TaskStats, error) {
	stats := &TaskStats{
		ByStatus:   make(map[TaskStatus]int64),
		ByPriority: make(map[TaskPriority]int64),
	}

	type statusRow struct {
		Status TaskStatus
		Count  int64
	}
	var byStatus []statusRow
	err := s.db.Model(&Task{}).Scopes(s.visibleScope(appID, userID)).
		Select("status, count(*) as count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[row.Status] = row.Count
		stats.Total += row.Count
	}

	type priorityRow struct {
		Priority TaskPriority
		Count    int64
	}
	var byPriority []priorityRow
	err = s.db.Model(&Task{}).Scopes(s.visibleScope(appID, userID)).
		Select("priority, count(*) as count").
		Group("priority").
		Scan(&byPriority).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byPriority {
		stats.ByPriority[row.Priority] = row.Count
	}

	err = s.db.Model(&Task{}).Scopes(s.visibleScope(appID, userID)).
		Where("due_date < ? AND status NOT IN ?", startOfDay(time.Now()), terminalStatuses).
		Count(&stats.Overdue).Error
	if err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.ByStatus[StatusCompleted]) / float64(stats.Total) * 100
	}
	return stats, nil
}

// --- Comments ---

func (s *TaskService) AddComment(appID string, userID uuid.UUID, taskID uuid.UUID, req CreateCommentRequest) (*Comment, error) {
	if req.Content == "" {
		return nil, ErrContentRequired
	}

	if _, err := s.Get(appID, userID, taskID); err != nil {
		return nil, err
	}

	comment := Comment{
		ID:       uuid.New(),
		AppID:    appID,
		TaskID:   taskID,
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *TaskService) ListComments(appID string, userID uuid.UUID, taskID uuid.UUID) ([]Comment, error) {
	if _, err := s.Get(appID, userID, taskID); err != nil {
		return nil, err
	}

	var comments []Comment
	err := s.db.Scopes(tenant.ForTenant(appID)).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *TaskService) DeleteComment(appID string, userID uuid.UUID, commentID uuid.UUID) error {
	var comment Comment
	if err := s.db.Scopes(tenant.ForTenant(appID)).First(&comment, "id = ?", commentID).Error; err != nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		return ErrNotVisible
	}
	return s.db.Delete(&comment).Error
}
