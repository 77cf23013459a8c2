package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taskmanager/api/internal/apperrors"
	"github.com/taskmanager/api/internal/models"
)

// TaskRepository defines the persistence operations required by the
// task service. List results are ordered by creation time descending.
type TaskRepository interface {
	// FindByID fetches a task by id, nil if absent.
	FindByID(ctx context.Context, id string) (*models.Task, error)
	// Save persists a task, assigning an id on first save.
	Save(ctx context.Context, task models.Task) (models.Task, error)
	// DeleteByID removes a task permanently.
	DeleteByID(ctx context.Context, id string) error
	// FindByOwner fetches all of a user's tasks.
	FindByOwner(ctx context.Context, userID string) ([]models.Task, error)
	// FindByOwnerAndCompleted fetches a user's tasks by completion state.
	FindByOwnerAndCompleted(ctx context.Context, userID string, completed bool) ([]models.Task, error)
	// FindByOwnerAndPriority fetches a user's tasks by canonical priority.
	FindByOwnerAndPriority(ctx context.Context, userID string, priority string) ([]models.Task, error)
}

// TokenVerifier resolves a bearer token into the identity it binds.
type TokenVerifier interface {
	Verify(bearer string) (userID, username string, err error)
}

// TaskRequest carries the mutable task fields from a create or update
// call. Priority and Completed are pointers so an absent value can be
// told apart from an explicit one.
type TaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

// TaskService applies owner-scoped task operations. Every operation
// resolves the caller's identity from the bearer token first; no
// caller-supplied user id is ever trusted.
type TaskService struct {
	repo   TaskRepository
	tokens TokenVerifier
	log    *zap.Logger
	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewTaskService constructs a TaskService from its collaborators.
func NewTaskService(repo TaskRepository, tokens TokenVerifier, log *zap.Logger) *TaskService {
	return &TaskService{repo: repo, tokens: tokens, log: log, now: time.Now}
}

// List returns the caller's tasks, newest first. At most one filter
// dimension is honored: a non-empty status wins over priority. A status
// of "completed" (case-insensitive) selects completed tasks; any other
// status selects pending ones. Priority is upper-cased before matching.
func (s *TaskService) List(ctx context.Context, bearer, status, priority string) ([]models.Task, error) {
	userID, _, err := s.tokens.Verify(bearer)
	if err != nil {
		return nil, err
	}

	switch {
	case status != "":
		completed := strings.EqualFold(status, "completed")
		return s.repo.FindByOwnerAndCompleted(ctx, userID, completed)
	case priority != "":
		return s.repo.FindByOwnerAndPriority(ctx, userID, strings.ToUpper(priority))
	default:
		return s.repo.FindByOwner(ctx, userID)
	}
}

// Create persists a new task for the caller. The title is required;
// priority defaults to MEDIUM and is stored upper-case; the task starts
// pending with createdAt and updatedAt set to now.
func (s *TaskService) Create(ctx context.Context, bearer string, req TaskRequest) (models.Task, error) {
	userID, _, err := s.tokens.Verify(bearer)
	if err != nil {
		return models.Task{}, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return models.Task{}, apperrors.ErrValidation
	}

	priority := models.PriorityMedium
	if req.Priority != nil {
		priority = models.CanonicalPriority(*req.Priority)
	}

	now := s.now()
	task, err := s.repo.Save(ctx, models.Task{
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		Priority:    priority,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return models.Task{}, err
	}

	s.log.Info("task created", zap.String("taskId", task.ID), zap.String("userId", userID))
	return task, nil
}

// Update replaces the task's title and description unconditionally,
// replaces priority and completed only when supplied, and refreshes
// updatedAt. The caller must own the task.
func (s *TaskService) Update(ctx context.Context, bearer, taskID string, req TaskRequest) (models.Task, error) {
	userID, _, err := s.tokens.Verify(bearer)
	if err != nil {
		return models.Task{}, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return models.Task{}, apperrors.ErrValidation
	}

	task, err := s.ownedTask(ctx, taskID, userID)
	if err != nil {
		return models.Task{}, err
	}

	task.Title = req.Title
	task.Description = req.Description
	if req.Priority != nil {
		task.Priority = models.CanonicalPriority(*req.Priority)
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	task.UpdatedAt = s.now()

	updated, err := s.repo.Save(ctx, *task)
	if err != nil {
		return models.Task{}, err
	}

	s.log.Info("task updated", zap.String("taskId", taskID), zap.String("userId", userID))
	return updated, nil
}

// Toggle flips the task's completed flag and refreshes updatedAt. The
// caller must own the task.
func (s *TaskService) Toggle(ctx context.Context, bearer, taskID string) (models.Task, error) {
	userID, _, err := s.tokens.Verify(bearer)
	if err != nil {
		return models.Task{}, err
	}

	task, err := s.ownedTask(ctx, taskID, userID)
	if err != nil {
		return models.Task{}, err
	}

	task.Completed = !task.Completed
	task.UpdatedAt = s.now()

	updated, err := s.repo.Save(ctx, *task)
	if err != nil {
		return models.Task{}, err
	}

	s.log.Info("task toggled", zap.String("taskId", taskID), zap.Bool("completed", updated.Completed))
	return updated, nil
}

// Delete removes the task permanently. The caller must own the task.
func (s *TaskService) Delete(ctx context.Context, bearer, taskID string) error {
	userID, _, err := s.tokens.Verify(bearer)
	if err != nil {
		return err
	}

	if _, err := s.ownedTask(ctx, taskID, userID); err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, taskID); err != nil {
		return err
	}

	s.log.Info("task deleted", zap.String("taskId", taskID), zap.String("userId", userID))
	return nil
}

// ownedTask loads the task and enforces the ownership guard:
// ErrNotFound when the task does not exist, ErrForbidden when it
// belongs to someone else.
func (s *TaskService) ownedTask(ctx context.Context, taskID, userID string) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.ErrNotFound
	}
	if task.UserID != userID {
		s.log.Warn("unauthorized task access attempt",
			zap.String("taskId", taskID), zap.String("userId", userID))
		return nil, apperrors.ErrForbidden
	}
	return task, nil
}
