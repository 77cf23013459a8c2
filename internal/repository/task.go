package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskmanager/api/internal/models"
)

const taskColumns = `id, title, description, completed, priority, user_id, created_at, updated_at`

// PostgresTaskRepository implements the task store against a PostgreSQL
// database. Every list query is owner-scoped and ordered newest first.
type PostgresTaskRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository using the
// provided *sql.DB.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

// FindByID fetches a single task by id, or nil if no such task exists.
// Ownership is not checked here; the workflow guards it.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE id = $1
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return &t, nil
}

// Save persists the task. A task without an id gets one assigned and is
// inserted; an existing task is updated in place. The stored record is
// returned.
func (r *PostgresTaskRepository) Save(ctx context.Context, task models.Task) (models.Task, error) {
	if task.ID == "" {
		task.ID = uuid.NewString()
		_, err := r.DB.ExecContext(ctx, `
			INSERT INTO tasks (id, title, description, completed, priority, user_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, task.ID, task.Title, task.Description, task.Completed, task.Priority, task.UserID, task.CreatedAt, task.UpdatedAt)
		if err != nil {
			return models.Task{}, fmt.Errorf("insert task: %w", err)
		}
		return task, nil
	}

	_, err := r.DB.ExecContext(ctx, `
		UPDATE tasks
		   SET title = $2, description = $3, completed = $4, priority = $5, updated_at = $6
		 WHERE id = $1
	`, task.ID, task.Title, task.Description, task.Completed, task.Priority, task.UpdatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// DeleteByID removes the task permanently.
func (r *PostgresTaskRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("DeleteByID: %w", err)
	}
	return nil
}

// FindByOwner fetches all tasks belonging to the user, most recent first.
func (r *PostgresTaskRepository) FindByOwner(ctx context.Context, userID string) ([]models.Task, error) {
	return r.queryTasks(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
}

// FindByOwnerAndCompleted fetches the user's tasks with the given
// completion state, most recent first.
func (r *PostgresTaskRepository) FindByOwnerAndCompleted(ctx context.Context, userID string, completed bool) ([]models.Task, error) {
	return r.queryTasks(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND completed = $2 ORDER BY created_at DESC
	`, userID, completed)
}

// FindByOwnerAndPriority fetches the user's tasks with the given
// canonical priority, most recent first.
func (r *PostgresTaskRepository) FindByOwnerAndPriority(ctx context.Context, userID string, priority string) ([]models.Task, error) {
	return r.queryTasks(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND priority = $2 ORDER BY created_at DESC
	`, userID, priority)
}

func (r *PostgresTaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return tasks, nil
}
