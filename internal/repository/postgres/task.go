package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ZhuneIDS/apitareas/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	query := `SELECT id, titulo, descripcion FROM tareas ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `INSERT INTO tareas (id, titulo, descripcion) VALUES ($1, $2, $3)
			  ON CONFLICT (id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, task.ID, task.Title, task.Description)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	if n == 0 {
		return model.Task{}, model.ErrAlreadyExists
	}

	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `UPDATE tareas SET titulo = $2, descripcion = $3, updated_at = now()
			  WHERE id = $1
			  RETURNING id, titulo, descripcion`

	var updated model.Task
	err := r.db.QueryRowContext(ctx, query, task.ID, task.Title, task.Description).
		Scan(&updated.ID, &updated.Title, &updated.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tareas WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
